package handlers

import (
	"errors"
	"net/http"

	"mdblog/internal/auth"
	"mdblog/internal/forms"
	"mdblog/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgBadCredentials  = "wrong username or password, please try again"
	msgInvalidRegister = "registration form input is invalid, please try again"
	msgUsernameTaken   = "username already taken"
	msgNotYourAccount  = "you have no permission to delete this account"
)

// AuthHandler handles login, register, logout and account deletion.
type AuthHandler struct {
	sessions *auth.Store
	userSvc  *service.UserService
}

func NewAuthHandler(sessions *auth.Store, userSvc *service.UserService) *AuthHandler {
	return &AuthHandler{sessions: sessions, userSvc: userSvc}
}

// LoginForm returns an empty login form.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": forms.LoginForm{}})
}

// Login godoc
// @Summary      Log in and establish a session
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var f forms.LoginForm
	if err := c.ShouldBind(&f); err != nil || f.Validate() != nil {
		c.String(http.StatusBadRequest, msgInvalidForm)
		return
	}
	user, err := h.userSvc.ValidateCredentials(c.Request.Context(), f.Username, f.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.String(http.StatusUnauthorized, msgBadCredentials)
			return
		}
		c.String(http.StatusInternalServerError, "login failed")
		return
	}
	if !h.startSession(c, user.ID) {
		return
	}
	c.Redirect(http.StatusFound, "/articles")
}

// Logout godoc
// @Summary      Tear down the session
// @Router       /logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.endSession(c)
	c.Redirect(http.StatusFound, "/articles")
}

// RegisterForm returns an empty registration form.
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": forms.RegisterForm{}})
}

// Register godoc
// @Summary      Create an account and log it in immediately
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var f forms.RegisterForm
	if err := c.ShouldBind(&f); err != nil || f.Validate() != nil {
		c.String(http.StatusBadRequest, msgInvalidRegister)
		return
	}
	user, err := h.userSvc.Register(c.Request.Context(), f.Username, f.Email, f.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.String(http.StatusConflict, msgUsernameTaken)
			return
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Blank-after-trim input the form could not reject.
			c.String(http.StatusBadRequest, msgInvalidRegister)
			return
		}
		c.String(http.StatusInternalServerError, "registration failed")
		return
	}
	if !h.startSession(c, user.ID) {
		return
	}
	c.Redirect(http.StatusFound, "/articles")
}

// DeleteAccount godoc
// @Summary      Delete the account; owner only, POST only. Logs out first.
// @Router       /users/{id}/delete [post]
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.String(http.StatusMethodNotAllowed, msgPostRequestsOnly)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	requesterID := auth.UserIDFromContext(c)
	if requesterID != id {
		c.String(http.StatusForbidden, msgNotYourAccount)
		return
	}

	// Log out before the row disappears.
	h.endSession(c)

	if err := h.userSvc.Delete(c.Request.Context(), requesterID, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.String(http.StatusNotFound, "user not found")
			return
		}
		c.String(http.StatusInternalServerError, "failed to delete account")
		return
	}
	c.Redirect(http.StatusFound, "/articles")
}

func (h *AuthHandler) startSession(c *gin.Context, userID int64) bool {
	sessionID, err := h.sessions.Create(c.Request.Context(), userID)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to create session")
		return false
	}
	c.SetCookie(auth.CookieName, sessionID, int(h.sessions.TTL().Seconds()), "/", "", false, true)
	return true
}

func (h *AuthHandler) endSession(c *gin.Context) {
	sessionID, err := c.Cookie(auth.CookieName)
	if err == nil && sessionID != "" {
		_ = h.sessions.Delete(c.Request.Context(), sessionID)
	}
	c.SetCookie(auth.CookieName, "", -1, "/", "", false, true)
}
