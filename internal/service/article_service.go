package service

import (
	"context"
	"errors"
	"strings"

	"mdblog/internal/cache"
	"mdblog/internal/domain"
	"mdblog/internal/markdown"
	"mdblog/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)

// PageSize is the fixed article list page size.
const PageSize = 12

// OrderByViews is the list query value selecting most-viewed ordering.
const OrderByViews = "total_views"

// ArticlePage is one page of the article list.
type ArticlePage struct {
	Items      []domain.Article
	Total      int64
	Page       int
	TotalPages int
	Search     string
	Order      string
}

// ArticleDetail is an article prepared for display: the body rendered to
// HTML plus the table of contents. The stored markdown is untouched.
type ArticleDetail struct {
	Article domain.Article
	HTML    string
	TOC     []markdown.Heading
}

type ArticleService struct {
	repo     repo.ArticleRepo
	cache    *cache.ArticleCache
	renderer *markdown.Renderer
	sf       singleflight.Group
}

// NewArticleService creates an ArticleService. If c is nil, caching is disabled.
func NewArticleService(r repo.ArticleRepo, c *cache.ArticleCache, md *markdown.Renderer) *ArticleService {
	return &ArticleService{repo: r, cache: c, renderer: md}
}

// List returns one page of articles. Search filters title or body
// case-insensitively; empty search returns everything. order selects
// most-viewed ordering when it equals OrderByViews, anything else keeps
// creation order. Out-of-range pages clamp to the nearest valid page.
func (s *ArticleService) List(ctx context.Context, search, order string, page int) (ArticlePage, error) {
	search = strings.TrimSpace(search)
	if order != OrderByViews {
		order = ""
	}

	if s.cache != nil {
		key := cache.ListKey(search, order, page)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if e, err := s.cache.GetList(ctx, key); err == nil && e != nil {
				return ArticlePage{
					Items: e.Items, Total: e.Total, Page: e.Page,
					TotalPages: e.TotalPages, Search: search, Order: order,
				}, nil
			}
			p, err := s.list(ctx, search, order, page)
			if err != nil {
				return ArticlePage{}, err
			}
			_ = s.cache.SetList(ctx, key, cache.ListEntry{
				Items: p.Items, Total: p.Total, Page: p.Page, TotalPages: p.TotalPages,
			})
			return p, nil
		})
		if err != nil {
			return ArticlePage{}, err
		}
		return v.(ArticlePage), nil
	}
	return s.list(ctx, search, order, page)
}

func (s *ArticleService) list(ctx context.Context, search, order string, page int) (ArticlePage, error) {
	total, err := s.repo.Count(ctx, search)
	if err != nil {
		return ArticlePage{}, err
	}

	totalPages := int((total + PageSize - 1) / PageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	// Clamp out-of-range pages to the nearest valid page.
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	items, err := s.repo.List(ctx, repo.ListQuery{
		Search:  search,
		ByViews: order == OrderByViews,
		Limit:   PageSize,
		Offset:  (page - 1) * PageSize,
	})
	if err != nil {
		return ArticlePage{}, err
	}

	return ArticlePage{
		Items:      items,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
		Search:     search,
		Order:      order,
	}, nil
}

// Detail fetches an article, counts the view and renders the body for
// display. The increment is a single atomic statement in storage, so
// concurrent views never under-count.
func (s *ArticleService) Detail(ctx context.Context, id int64) (ArticleDetail, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ArticleDetail{}, ErrNotFound
		}
		return ArticleDetail{}, err
	}

	views, err := s.repo.IncrementViews(ctx, id)
	if err != nil {
		return ArticleDetail{}, err
	}
	a.TotalViews = views

	res, err := s.renderer.Render(a.Body)
	if err != nil {
		return ArticleDetail{}, err
	}
	return ArticleDetail{Article: a, HTML: res.HTML, TOC: res.TOC}, nil
}

// Create persists a new article owned by authorID.
func (s *ArticleService) Create(ctx context.Context, authorID int64, title, body string) (domain.Article, error) {
	a, err := s.repo.Create(ctx, domain.Article{
		Title:    strings.TrimSpace(title),
		Body:     body,
		AuthorID: authorID,
	})
	if err != nil {
		return domain.Article{}, err
	}
	s.invalidateCache(ctx)
	return a, nil
}

// GetForEdit returns the article for pre-populating the edit form.
// Same ownership rule as Update.
func (s *ArticleService) GetForEdit(ctx context.Context, userID, id int64) (domain.Article, error) {
	return s.getOwned(ctx, userID, id)
}

// Update overwrites title and body. Only the author may update.
func (s *ArticleService) Update(ctx context.Context, userID, id int64, title, body string) (domain.Article, error) {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return domain.Article{}, err
	}
	a, err := s.repo.Update(ctx, id, strings.TrimSpace(title), body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Article{}, ErrNotFound
		}
		return domain.Article{}, err
	}
	s.invalidateCache(ctx)
	return a, nil
}

// Delete removes the article. Only the author may delete.
func (s *ArticleService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// getOwned is the authorization predicate guarding every mutating
// article operation: the requester must be the author.
func (s *ArticleService) getOwned(ctx context.Context, userID, id int64) (domain.Article, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Article{}, ErrNotFound
		}
		return domain.Article{}, err
	}
	if a.AuthorID != userID {
		return domain.Article{}, ErrForbidden
	}
	return a, nil
}

func (s *ArticleService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateLists(ctx)
	}
}
