package dto

import (
	"time"

	"mdblog/internal/domain"
	"mdblog/internal/markdown"
	"mdblog/internal/service"
)

type ArticleResponse struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	AuthorID   int64     `json:"author_id"`
	TotalViews int64     `json:"total_views"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ArticleListResponse struct {
	Items      []ArticleResponse `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	Search     string            `json:"search"`
	Order      string            `json:"order,omitempty"`
}

// ArticleDetailResponse carries the rendered body; the raw markdown
// source is not exposed on the detail page.
type ArticleDetailResponse struct {
	ID         int64              `json:"id"`
	Title      string             `json:"title"`
	HTML       string             `json:"html"`
	TOC        []markdown.Heading `json:"toc"`
	AuthorID   int64              `json:"author_id"`
	TotalViews int64              `json:"total_views"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// ArticleFormData is what a GET on a create/update form endpoint returns:
// the field values a template would render into the form.
type ArticleFormData struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func ArticleToResponse(a domain.Article) ArticleResponse {
	return ArticleResponse{
		ID:         a.ID,
		Title:      a.Title,
		Body:       a.Body,
		AuthorID:   a.AuthorID,
		TotalViews: a.TotalViews,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func ArticlePageToResponse(p service.ArticlePage) ArticleListResponse {
	items := make([]ArticleResponse, len(p.Items))
	for i := range p.Items {
		items[i] = ArticleToResponse(p.Items[i])
	}
	return ArticleListResponse{
		Items:      items,
		Total:      p.Total,
		Page:       p.Page,
		TotalPages: p.TotalPages,
		Search:     p.Search,
		Order:      p.Order,
	}
}

func ArticleDetailToResponse(d service.ArticleDetail) ArticleDetailResponse {
	return ArticleDetailResponse{
		ID:         d.Article.ID,
		Title:      d.Article.Title,
		HTML:       d.HTML,
		TOC:        d.TOC,
		AuthorID:   d.Article.AuthorID,
		TotalViews: d.Article.TotalViews,
		CreatedAt:  d.Article.CreatedAt,
		UpdatedAt:  d.Article.UpdatedAt,
	}
}
