// Package forms holds the submitted-form objects and their validation
// rules. Handlers bind request bodies into these structs and call
// Validate before anything reaches the service layer.
package forms

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// notBlank rejects values that are empty after trimming; Required alone
// lets whitespace-only input through.
func notBlank(value interface{}) error {
	if s, _ := value.(string); strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

// ArticleForm carries the fields of the article create/update form.
type ArticleForm struct {
	Title string `form:"title" json:"title"`
	Body  string `form:"body" json:"body"`
}

func (f ArticleForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required, validation.Length(1, 120)),
		validation.Field(&f.Body, validation.Required),
	)
}

// LoginForm carries login credentials. Presence only, no shape constraints.
type LoginForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

func (f LoginForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Username, validation.Required),
		validation.Field(&f.Password, validation.Required),
	)
}

// RegisterForm carries registration fields. Password2 must repeat Password;
// a mismatch is reported against the password2 field.
type RegisterForm struct {
	Username  string `form:"username" json:"username"`
	Email     string `form:"email" json:"email"`
	Password  string `form:"password" json:"password"`
	Password2 string `form:"password2" json:"password2"`
}

func (f RegisterForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Username, validation.Required, validation.By(notBlank), validation.Length(1, 120)),
		validation.Field(&f.Email, is.Email),
		validation.Field(&f.Password, validation.Required),
		validation.Field(&f.Password2, validation.Required, validation.By(f.matchesPassword)),
	)
}

func (f RegisterForm) matchesPassword(value interface{}) error {
	s, _ := value.(string)
	if s != f.Password {
		return errors.New("passwords do not match")
	}
	return nil
}

// ProfileForm carries the editable profile fields. The avatar file is
// handled separately as a multipart upload.
type ProfileForm struct {
	Phone string `form:"phone" json:"phone"`
	Bio   string `form:"bio" json:"bio"`
}

func (f ProfileForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Phone, validation.Length(0, 20)),
		validation.Field(&f.Bio, validation.Length(0, 500)),
	)
}
