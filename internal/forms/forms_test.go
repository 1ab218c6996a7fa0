package forms

import (
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleFormRequiredFields(t *testing.T) {
	assert.Error(t, ArticleForm{}.Validate())
	assert.Error(t, ArticleForm{Title: "A"}.Validate())
	assert.Error(t, ArticleForm{Body: "b"}.Validate())
	assert.NoError(t, ArticleForm{Title: "A", Body: "b"}.Validate())
}

func TestArticleFormTitleTooLong(t *testing.T) {
	f := ArticleForm{Title: strings.Repeat("x", 121), Body: "b"}
	assert.Error(t, f.Validate())
}

func TestLoginFormPresenceOnly(t *testing.T) {
	assert.Error(t, LoginForm{Username: "bob"}.Validate())
	assert.Error(t, LoginForm{Password: "x"}.Validate())
	assert.NoError(t, LoginForm{Username: "bob", Password: "x"}.Validate())
}

func TestRegisterFormPasswordMismatch(t *testing.T) {
	f := RegisterForm{Username: "bob", Password: "x", Password2: "y"}
	err := f.Validate()
	require.Error(t, err)

	// The violation must be attached to the password2 field.
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "password2")
	assert.NotContains(t, verrs, "password")
}

func TestRegisterFormWhitespaceOnlyUsername(t *testing.T) {
	f := RegisterForm{Username: "   ", Password: "x", Password2: "x"}
	err := f.Validate()
	require.Error(t, err)

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "username")
}

func TestRegisterFormValid(t *testing.T) {
	f := RegisterForm{Username: "bob", Email: "bob@example.com", Password: "x", Password2: "x"}
	assert.NoError(t, f.Validate())
}

func TestRegisterFormEmailOptionalButChecked(t *testing.T) {
	assert.NoError(t, RegisterForm{Username: "bob", Password: "x", Password2: "x"}.Validate())
	assert.Error(t, RegisterForm{Username: "bob", Email: "not-an-email", Password: "x", Password2: "x"}.Validate())
}

func TestProfileFormLimits(t *testing.T) {
	assert.NoError(t, ProfileForm{}.Validate())
	assert.NoError(t, ProfileForm{Phone: "123456", Bio: "hello"}.Validate())
	assert.Error(t, ProfileForm{Phone: strings.Repeat("1", 21)}.Validate())
	assert.Error(t, ProfileForm{Bio: strings.Repeat("b", 501)}.Validate())
}
