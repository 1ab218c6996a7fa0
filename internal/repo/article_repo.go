package repo

import (
	"context"
	"strings"

	"mdblog/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ListQuery selects a page of articles. Search filters title OR body,
// case-insensitively; empty search matches everything. ByViews orders by
// descending view count, otherwise creation order applies.
type ListQuery struct {
	Search  string
	ByViews bool
	Limit   int
	Offset  int
}

type ArticleRepo interface {
	Create(ctx context.Context, a domain.Article) (domain.Article, error)
	GetByID(ctx context.Context, id int64) (domain.Article, error)
	List(ctx context.Context, q ListQuery) ([]domain.Article, error)
	Count(ctx context.Context, search string) (int64, error)
	Update(ctx context.Context, id int64, title, body string) (domain.Article, error)
	Delete(ctx context.Context, id int64) error
	IncrementViews(ctx context.Context, id int64) (int64, error)
}

type PGArticleRepo struct {
	db *pgxpool.Pool
}

func NewPGArticleRepo(db *pgxpool.Pool) *PGArticleRepo {
	return &PGArticleRepo{db: db}
}

func (r *PGArticleRepo) Create(ctx context.Context, a domain.Article) (domain.Article, error) {
	query := `
		INSERT INTO articles (title, body, author_id)
		VALUES ($1, $2, $3)
		RETURNING id, title, body, author_id, total_views, created_at, updated_at`
	var out domain.Article
	err := r.db.QueryRow(ctx, query, a.Title, a.Body, a.AuthorID).Scan(
		&out.ID, &out.Title, &out.Body, &out.AuthorID, &out.TotalViews,
		&out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGArticleRepo) GetByID(ctx context.Context, id int64) (domain.Article, error) {
	query := `
		SELECT id, title, body, author_id, total_views, created_at, updated_at
		FROM articles WHERE id = $1`
	var a domain.Article
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Title, &a.Body, &a.AuthorID, &a.TotalViews,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *PGArticleRepo) List(ctx context.Context, q ListQuery) ([]domain.Article, error) {
	order := "id ASC"
	if q.ByViews {
		order = "total_views DESC, id ASC"
	}
	query := `
		SELECT id, title, body, author_id, total_views, created_at, updated_at
		FROM articles
		WHERE ($1 = '' OR title ILIKE '%' || $1 || '%' ESCAPE '\' OR body ILIKE '%' || $1 || '%' ESCAPE '\')
		ORDER BY ` + order + `
		LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, escapeLike(q.Search), q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []domain.Article
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.AuthorID, &a.TotalViews,
			&a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *PGArticleRepo) Count(ctx context.Context, search string) (int64, error) {
	query := `
		SELECT COUNT(*) FROM articles
		WHERE ($1 = '' OR title ILIKE '%' || $1 || '%' ESCAPE '\' OR body ILIKE '%' || $1 || '%' ESCAPE '\')`
	var n int64
	err := r.db.QueryRow(ctx, query, escapeLike(search)).Scan(&n)
	return n, err
}

func (r *PGArticleRepo) Update(ctx context.Context, id int64, title, body string) (domain.Article, error) {
	query := `
		UPDATE articles SET title = $2, body = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, body, author_id, total_views, created_at, updated_at`
	var a domain.Article
	err := r.db.QueryRow(ctx, query, id, title, body).Scan(
		&a.ID, &a.Title, &a.Body, &a.AuthorID, &a.TotalViews,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *PGArticleRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	return err
}

// escapeLike escapes the LIKE pattern metacharacters so the search term
// matches literally inside the ILIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// IncrementViews bumps the counter in a single statement so concurrent
// detail views never lose an increment.
func (r *PGArticleRepo) IncrementViews(ctx context.Context, id int64) (int64, error) {
	var views int64
	err := r.db.QueryRow(ctx,
		`UPDATE articles SET total_views = total_views + 1 WHERE id = $1 RETURNING total_views`,
		id,
	).Scan(&views)
	return views, err
}
