package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"mdblog/internal/auth"
	"mdblog/internal/dto"
	"mdblog/internal/forms"
	"mdblog/internal/service"

	"github.com/gin-gonic/gin"
)

// Failure responses on this surface are plain human-readable text, the
// way the rendered pages report them; successes redirect or return the
// data a template would render.
const (
	msgInvalidForm      = "invalid form input, please try again"
	msgArticleNotFound  = "article not found"
	msgNotYourArticle   = "sorry, you have no permission to modify this article"
	msgPostRequestsOnly = "post requests only"
)

type ArticleHandler struct {
	svc *service.ArticleService
}

func NewArticleHandler(svc *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{svc: svc}
}

// List godoc
// @Summary      List articles
// @Param        search  query  string  false  "Filter by title or body"
// @Param        order   query  string  false  "total_views for most-viewed ordering"
// @Param        page    query  int     false  "Page number, clamped to valid range"
// @Router       /articles [get]
func (h *ArticleHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	p, err := h.svc.List(c.Request.Context(), c.Query("search"), c.Query("order"), page)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load articles")
		return
	}
	c.JSON(http.StatusOK, dto.ArticlePageToResponse(p))
}

// Detail godoc
// @Summary      Article detail; counts the view and renders markdown
// @Param        id  path  int  true  "Article ID"
// @Router       /articles/detail/{id} [get]
func (h *ArticleHandler) Detail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	d, err := h.svc.Detail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.String(http.StatusNotFound, msgArticleNotFound)
			return
		}
		c.String(http.StatusInternalServerError, "failed to load article")
		return
	}
	c.JSON(http.StatusOK, dto.ArticleDetailToResponse(d))
}

// CreateForm returns an empty form for the create page.
func (h *ArticleHandler) CreateForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": dto.ArticleFormData{}})
}

// Create godoc
// @Summary      Create an article owned by the current user
// @Router       /articles/create [post]
func (h *ArticleHandler) Create(c *gin.Context) {
	var f forms.ArticleForm
	if err := c.ShouldBind(&f); err != nil || f.Validate() != nil {
		c.String(http.StatusBadRequest, msgInvalidForm)
		return
	}
	userID := auth.UserIDFromContext(c)
	if _, err := h.svc.Create(c.Request.Context(), userID, f.Title, f.Body); err != nil {
		c.String(http.StatusInternalServerError, "failed to create article")
		return
	}
	c.Redirect(http.StatusFound, "/articles")
}

// UpdateForm returns the edit form pre-populated with the existing
// article, alongside the article itself for display.
func (h *ArticleHandler) UpdateForm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	a, err := h.svc.GetForEdit(c.Request.Context(), auth.UserIDFromContext(c), id)
	if err != nil {
		h.writeArticleError(c, err, msgNotYourArticle)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"article": dto.ArticleToResponse(a),
		"form":    dto.ArticleFormData{Title: a.Title, Body: a.Body},
	})
}

// Update godoc
// @Summary      Overwrite title and body; author only
// @Router       /articles/update/{id} [post]
func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var f forms.ArticleForm
	if err := c.ShouldBind(&f); err != nil || f.Validate() != nil {
		c.String(http.StatusBadRequest, msgInvalidForm)
		return
	}
	userID := auth.UserIDFromContext(c)
	if _, err := h.svc.Update(c.Request.Context(), userID, id, f.Title, f.Body); err != nil {
		h.writeArticleError(c, err, msgNotYourArticle)
		return
	}
	c.Redirect(http.StatusFound, "/articles/detail/"+strconv.FormatInt(id, 10))
}

// Delete godoc
// @Summary      Safe delete; author only, POST only
// @Router       /articles/delete/{id} [post]
func (h *ArticleHandler) Delete(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.String(http.StatusMethodNotAllowed, msgPostRequestsOnly)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID := auth.UserIDFromContext(c)
	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		h.writeArticleError(c, err, msgNotYourArticle)
		return
	}
	c.Redirect(http.StatusFound, "/articles")
}

func (h *ArticleHandler) writeArticleError(c *gin.Context, err error, forbiddenMsg string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.String(http.StatusNotFound, msgArticleNotFound)
	case errors.Is(err, service.ErrForbidden):
		c.String(http.StatusForbidden, forbiddenMsg)
	default:
		c.String(http.StatusInternalServerError, "something went wrong")
	}
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
