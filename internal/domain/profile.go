package domain

import "time"

// Profile holds supplementary per-user data. Exactly one row per user,
// created lazily on first profile-edit access. Avatar is a path relative
// to the media root ("avatar/20060102/<name>"), empty if never uploaded.
type Profile struct {
	UserID int64
	Phone  string
	Avatar string
	Bio    string

	UpdatedAt time.Time
}
