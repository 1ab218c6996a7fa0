package service

import (
	"context"
	"errors"
	"strings"

	"mdblog/internal/domain"
	"mdblog/internal/repo"

	"github.com/jackc/pgx/v5"
)

// ProfileService handles the per-user profile (phone, avatar, bio).
type ProfileService struct {
	profiles repo.ProfileRepo
	users    repo.UserRepo
}

func NewProfileService(profiles repo.ProfileRepo, users repo.UserRepo) *ProfileService {
	return &ProfileService{profiles: profiles, users: users}
}

// GetForEdit returns the target user and their profile, creating the
// profile row on first access. Only the owner may view the edit page.
func (s *ProfileService) GetForEdit(ctx context.Context, requesterID, targetID int64) (domain.Profile, domain.User, error) {
	if requesterID != targetID {
		return domain.Profile{}, domain.User{}, ErrForbidden
	}
	u, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, domain.User{}, ErrNotFound
		}
		return domain.Profile{}, domain.User{}, err
	}
	p, err := s.profiles.GetOrCreate(ctx, targetID)
	if err != nil {
		return domain.Profile{}, domain.User{}, err
	}
	return p, u, nil
}

// Update applies the submitted profile fields. The avatar path is only
// overwritten when a file was actually uploaded in this submission.
func (s *ProfileService) Update(ctx context.Context, requesterID, targetID int64, phone, bio string, avatar string, avatarSet bool) (domain.Profile, error) {
	p, _, err := s.GetForEdit(ctx, requesterID, targetID)
	if err != nil {
		return domain.Profile{}, err
	}
	p.Phone = strings.TrimSpace(phone)
	p.Bio = strings.TrimSpace(bio)
	if avatarSet {
		p.Avatar = avatar
	}
	return s.profiles.Update(ctx, p)
}
