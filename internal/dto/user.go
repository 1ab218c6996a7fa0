package dto

import "mdblog/internal/domain"

// UserResponse is returned wherever user info is displayed.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// ProfileResponse mirrors the profile row for the edit page.
type ProfileResponse struct {
	UserID int64  `json:"user_id"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar"`
	Bio    string `json:"bio"`
}

// ProfileFormData pre-populates the profile edit form.
type ProfileFormData struct {
	Phone string `json:"phone"`
	Bio   string `json:"bio"`
}

func UserToResponse(u domain.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}

func ProfileToResponse(p domain.Profile) ProfileResponse {
	return ProfileResponse{UserID: p.UserID, Phone: p.Phone, Avatar: p.Avatar, Bio: p.Bio}
}
