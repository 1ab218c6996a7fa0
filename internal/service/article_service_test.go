package service

import (
	"context"
	"sort"
	"strings"
	"testing"

	"mdblog/internal/domain"
	"mdblog/internal/markdown"
	"mdblog/internal/repo"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeArticleRepo keeps articles in memory and mirrors the PG repo's
// query semantics closely enough for service-level tests.
type fakeArticleRepo struct {
	nextID   int64
	articles map[int64]domain.Article
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{nextID: 1, articles: make(map[int64]domain.Article)}
}

func (r *fakeArticleRepo) Create(_ context.Context, a domain.Article) (domain.Article, error) {
	a.ID = r.nextID
	r.nextID++
	r.articles[a.ID] = a
	return a, nil
}

func (r *fakeArticleRepo) GetByID(_ context.Context, id int64) (domain.Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return domain.Article{}, pgx.ErrNoRows
	}
	return a, nil
}

func (r *fakeArticleRepo) matches(a domain.Article, search string) bool {
	if search == "" {
		return true
	}
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(a.Title), s) ||
		strings.Contains(strings.ToLower(a.Body), s)
}

func (r *fakeArticleRepo) all(search string) []domain.Article {
	var out []domain.Article
	for _, a := range r.articles {
		if r.matches(a, search) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeArticleRepo) List(_ context.Context, q repo.ListQuery) ([]domain.Article, error) {
	out := r.all(q.Search)
	if q.ByViews {
		sort.SliceStable(out, func(i, j int) bool { return out[i].TotalViews > out[j].TotalViews })
	}
	if q.Offset >= len(out) {
		return nil, nil
	}
	out = out[q.Offset:]
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (r *fakeArticleRepo) Count(_ context.Context, search string) (int64, error) {
	return int64(len(r.all(search))), nil
}

func (r *fakeArticleRepo) Update(_ context.Context, id int64, title, body string) (domain.Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return domain.Article{}, pgx.ErrNoRows
	}
	a.Title = title
	a.Body = body
	r.articles[id] = a
	return a, nil
}

func (r *fakeArticleRepo) Delete(_ context.Context, id int64) error {
	delete(r.articles, id)
	return nil
}

func (r *fakeArticleRepo) IncrementViews(_ context.Context, id int64) (int64, error) {
	a, ok := r.articles[id]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	a.TotalViews++
	r.articles[id] = a
	return a.TotalViews, nil
}

func newTestArticleService(r repo.ArticleRepo) *ArticleService {
	return NewArticleService(r, nil, markdown.NewRenderer())
}

func seed(t *testing.T, r *fakeArticleRepo, n int, authorID int64) {
	t.Helper()
	svc := newTestArticleService(r)
	for i := 0; i < n; i++ {
		_, err := svc.Create(context.Background(), authorID, "Article "+strings.Repeat("x", i%5), "body")
		require.NoError(t, err)
	}
}

func TestListEmptySearchReturnsAll(t *testing.T) {
	r := newFakeArticleRepo()
	seed(t, r, 5, 1)
	svc := newTestArticleService(r)

	p, err := svc.List(context.Background(), "", "", 1)
	require.NoError(t, err)
	assert.Len(t, p.Items, 5)
	assert.EqualValues(t, 5, p.Total)
	assert.Equal(t, 1, p.TotalPages)
}

func TestListSearchFiltersTitleAndBodyCaseInsensitive(t *testing.T) {
	r := newFakeArticleRepo()
	svc := newTestArticleService(r)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, "Go Concurrency", "channels and goroutines")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, "Cooking", "how to bake GOod bread")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, "Gardening", "tomatoes")
	require.NoError(t, err)

	p, err := svc.List(ctx, "go", "", 1)
	require.NoError(t, err)
	assert.Len(t, p.Items, 2) // matched in title and in body

	p, err = svc.List(ctx, "TOMATO", "", 1)
	require.NoError(t, err)
	assert.Len(t, p.Items, 1)
}

func TestListOrderByViewsNonIncreasing(t *testing.T) {
	r := newFakeArticleRepo()
	seed(t, r, 6, 1)
	svc := newTestArticleService(r)
	ctx := context.Background()

	// Give the articles distinct view counts.
	for id := int64(1); id <= 6; id++ {
		for i := int64(0); i < id*2; i++ {
			_, err := svc.Detail(ctx, id)
			require.NoError(t, err)
		}
	}

	p, err := svc.List(ctx, "", OrderByViews, 1)
	require.NoError(t, err)
	require.Len(t, p.Items, 6)
	for i := 1; i < len(p.Items); i++ {
		assert.GreaterOrEqual(t, p.Items[i-1].TotalViews, p.Items[i].TotalViews)
	}
}

func TestListUnknownOrderKeepsCreationOrder(t *testing.T) {
	r := newFakeArticleRepo()
	seed(t, r, 3, 1)
	svc := newTestArticleService(r)

	p, err := svc.List(context.Background(), "", "whatever", 1)
	require.NoError(t, err)
	require.Len(t, p.Items, 3)
	assert.Empty(t, p.Order)
	for i := 1; i < len(p.Items); i++ {
		assert.Less(t, p.Items[i-1].ID, p.Items[i].ID)
	}
}

func TestListPaginationAndClamping(t *testing.T) {
	r := newFakeArticleRepo()
	seed(t, r, 30, 1) // 3 pages of 12, 12, 6
	svc := newTestArticleService(r)
	ctx := context.Background()

	p, err := svc.List(ctx, "", "", 1)
	require.NoError(t, err)
	assert.Len(t, p.Items, PageSize)
	assert.Equal(t, 3, p.TotalPages)

	p, err = svc.List(ctx, "", "", 3)
	require.NoError(t, err)
	assert.Len(t, p.Items, 6)

	// Out-of-range pages clamp to the nearest valid page.
	p, err = svc.List(ctx, "", "", 99)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Page)
	assert.Len(t, p.Items, 6)

	p, err = svc.List(ctx, "", "", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)

	p, err = svc.List(ctx, "", "", -4)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)
}

func TestDetailIncrementsCounterOncePerView(t *testing.T) {
	r := newFakeArticleRepo()
	svc := newTestArticleService(r)
	ctx := context.Background()

	a, err := svc.Create(ctx, 1, "A", "# Heading\n\nbody")
	require.NoError(t, err)
	assert.EqualValues(t, 0, a.TotalViews)

	for i := int64(1); i <= 3; i++ {
		d, err := svc.Detail(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, i, d.Article.TotalViews)
	}
}

func TestDetailRendersMarkdownWithoutMutatingSource(t *testing.T) {
	r := newFakeArticleRepo()
	svc := newTestArticleService(r)
	ctx := context.Background()

	src := "# Title\n\nsome **bold** text"
	a, err := svc.Create(ctx, 1, "A", src)
	require.NoError(t, err)

	d, err := svc.Detail(ctx, a.ID)
	require.NoError(t, err)
	assert.Contains(t, d.HTML, "<strong>bold</strong>")
	require.Len(t, d.TOC, 1)
	assert.Equal(t, "Title", d.TOC[0].Title)

	// Stored markdown stays raw.
	stored, err := r.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, src, stored.Body)
}

func TestDetailNotFound(t *testing.T) {
	svc := newTestArticleService(newFakeArticleRepo())

	_, err := svc.Detail(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateOnlyByAuthor(t *testing.T) {
	r := newFakeArticleRepo()
	svc := newTestArticleService(r)
	ctx := context.Background()

	a, err := svc.Create(ctx, 1, "A", "b")
	require.NoError(t, err)

	_, err = svc.Update(ctx, 2, a.ID, "Hacked", "x")
	assert.ErrorIs(t, err, ErrForbidden)

	upd, err := svc.Update(ctx, 1, a.ID, "New title", "new body")
	require.NoError(t, err)
	assert.Equal(t, "New title", upd.Title)
	assert.Equal(t, "new body", upd.Body)
}

func TestDeleteOnlyByAuthor(t *testing.T) {
	r := newFakeArticleRepo()
	svc := newTestArticleService(r)
	ctx := context.Background()

	a, err := svc.Create(ctx, 1, "A", "b")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, 2, a.ID), ErrForbidden)

	require.NoError(t, svc.Delete(ctx, 1, a.ID))
	p, err := svc.List(ctx, "", "", 1)
	require.NoError(t, err)
	assert.Empty(t, p.Items)
}

func TestGetForEditReturnsOwnedArticle(t *testing.T) {
	r := newFakeArticleRepo()
	svc := newTestArticleService(r)
	ctx := context.Background()

	a, err := svc.Create(ctx, 1, "A", "b")
	require.NoError(t, err)

	got, err := svc.GetForEdit(ctx, 1, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = svc.GetForEdit(ctx, 2, a.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}
