package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"mdblog/internal/auth"
	"mdblog/internal/dto"
	"mdblog/internal/forms"
	"mdblog/internal/media"
	"mdblog/internal/service"

	"github.com/gin-gonic/gin"
)

const msgNotYourProfile = "you have no permission to modify this profile"

// ProfileHandler handles the profile edit page and avatar uploads.
type ProfileHandler struct {
	svc   *service.ProfileService
	media *media.Store
}

func NewProfileHandler(svc *service.ProfileService, media *media.Store) *ProfileHandler {
	return &ProfileHandler{svc: svc, media: media}
}

// EditForm godoc
// @Summary      Profile edit form, pre-populated; owner only
// @Router       /users/{id}/profile [get]
func (h *ProfileHandler) EditForm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, u, err := h.svc.GetForEdit(c.Request.Context(), auth.UserIDFromContext(c), id)
	if err != nil {
		h.writeProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile": dto.ProfileToResponse(p),
		"user":    dto.UserToResponse(u),
		"form":    dto.ProfileFormData{Phone: p.Phone, Bio: p.Bio},
	})
}

// Edit godoc
// @Summary      Apply profile changes; avatar only replaced when uploaded
// @Router       /users/{id}/profile [post]
func (h *ProfileHandler) Edit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	requesterID := auth.UserIDFromContext(c)
	if requesterID != id {
		// Check before touching the uploaded file.
		c.String(http.StatusForbidden, msgNotYourProfile)
		return
	}

	var f forms.ProfileForm
	if err := c.ShouldBind(&f); err != nil || f.Validate() != nil {
		c.String(http.StatusBadRequest, msgInvalidForm)
		return
	}

	avatarPath := ""
	avatarSet := false
	if fh, err := c.FormFile("avatar"); err == nil && fh != nil {
		src, err := fh.Open()
		if err != nil {
			c.String(http.StatusBadRequest, "failed to read uploaded file")
			return
		}
		defer src.Close()
		avatarPath, err = h.media.SaveAvatar(fh.Filename, src)
		if err != nil {
			c.String(http.StatusInternalServerError, "failed to store uploaded file")
			return
		}
		avatarSet = true
	}

	if _, err := h.svc.Update(c.Request.Context(), requesterID, id, f.Phone, f.Bio, avatarPath, avatarSet); err != nil {
		h.writeProfileError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/users/"+strconv.FormatInt(id, 10)+"/profile")
}

func (h *ProfileHandler) writeProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		c.String(http.StatusForbidden, msgNotYourProfile)
	case errors.Is(err, service.ErrNotFound):
		c.String(http.StatusNotFound, "user not found")
	default:
		c.String(http.StatusInternalServerError, "something went wrong")
	}
}
