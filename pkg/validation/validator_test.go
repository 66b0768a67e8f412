package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

func bindErr(t *testing.T, body string) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	Init()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var p signupPayload
	return c.ShouldBindJSON(&p)
}

func TestToFieldErrorsUsesJSONNames(t *testing.T) {
	err := bindErr(t, `{"email":"not-an-email","password":"secret-password"}`)
	require.Error(t, err)

	fields := ToFieldErrors(err)
	require.Contains(t, fields, "email")
	assert.Equal(t, []string{"must be a valid email"}, fields["email"])
}

func TestToFieldErrorsRequired(t *testing.T) {
	err := bindErr(t, `{}`)
	require.Error(t, err)

	fields := ToFieldErrors(err)
	assert.Equal(t, []string{"can't be blank"}, fields["email"])
	assert.Equal(t, []string{"can't be blank"}, fields["password"])
}

func TestToFieldErrorsPasswordAlias(t *testing.T) {
	err := bindErr(t, `{"email":"a@b.com","password":"short"}`)
	require.Error(t, err)

	fields := ToFieldErrors(err)
	assert.Equal(t, []string{"must be at least 8 characters long"}, fields["password"])
}

func TestToFieldErrorsInvalidJSON(t *testing.T) {
	err := bindErr(t, `{"email": }`)
	require.Error(t, err)

	fields := ToFieldErrors(err)
	assert.Equal(t, []string{"invalid json"}, fields["body"])
}

func TestToFieldErrorsNil(t *testing.T) {
	assert.Nil(t, ToFieldErrors(nil))
}
