package repo

import (
	"context"

	"mdblog/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileRepo provides profile persistence. Profiles are created lazily,
// so reads go through GetOrCreate.
type ProfileRepo interface {
	GetOrCreate(ctx context.Context, userID int64) (domain.Profile, error)
	Update(ctx context.Context, p domain.Profile) (domain.Profile, error)
}

type PGProfileRepo struct {
	db *pgxpool.Pool
}

func NewPGProfileRepo(db *pgxpool.Pool) *PGProfileRepo {
	return &PGProfileRepo{db: db}
}

// GetOrCreate inserts an empty profile row if none exists, then reads it
// back. ON CONFLICT DO NOTHING keeps concurrent first accesses idempotent.
func (r *PGProfileRepo) GetOrCreate(ctx context.Context, userID int64) (domain.Profile, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO profiles (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return domain.Profile{}, err
	}

	var p domain.Profile
	err = r.db.QueryRow(ctx,
		`SELECT user_id, phone, avatar, bio, updated_at FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.Phone, &p.Avatar, &p.Bio, &p.UpdatedAt)
	return p, err
}

func (r *PGProfileRepo) Update(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	query := `
		UPDATE profiles SET phone = $2, avatar = $3, bio = $4, updated_at = NOW()
		WHERE user_id = $1
		RETURNING user_id, phone, avatar, bio, updated_at`
	var out domain.Profile
	err := r.db.QueryRow(ctx, query, p.UserID, p.Phone, p.Avatar, p.Bio).Scan(
		&out.UserID, &out.Phone, &out.Avatar, &out.Bio, &out.UpdatedAt,
	)
	return out, err
}
