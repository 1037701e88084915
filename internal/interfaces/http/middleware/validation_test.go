package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registrationPayload struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Age      int    `json:"age" binding:"max=150"`
}

func bindPayload(t *testing.T, body string) error {
	t.Helper()
	SetupValidator()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(body)))
	c.Request.Header.Set("Content-Type", "application/json")

	var payload registrationPayload
	return c.ShouldBindJSON(&payload)
}

func TestValidationDetails_FieldNamesFromJSONTags(t *testing.T) {
	err := bindPayload(t, `{"username":"ab"}`)
	require.Error(t, err)

	details := ValidationDetails(err)
	require.Len(t, details, 2)

	fields := map[string]string{}
	for _, d := range details {
		fields[d.Field] = d.Message
	}
	assert.Equal(t, "Must be at least 3 characters", fields["username"])
	assert.Equal(t, "This field is required", fields["email"])
}

func TestValidationDetails_EmailMessage(t *testing.T) {
	err := bindPayload(t, `{"username":"someone","email":"not-an-email"}`)
	require.Error(t, err)

	details := ValidationDetails(err)
	require.Len(t, details, 1)
	assert.Equal(t, "email", details[0].Field)
	assert.Equal(t, "Invalid email format", details[0].Message)
}

func TestValidationDetails_NumericMax(t *testing.T) {
	err := bindPayload(t, `{"username":"someone","email":"a@b.co","age":200}`)
	require.Error(t, err)

	details := ValidationDetails(err)
	require.Len(t, details, 1)
	assert.Equal(t, "age", details[0].Field)
	assert.Equal(t, "Must be at most 150", details[0].Message)
}

func TestValidationDetails_NonValidationError(t *testing.T) {
	// malformed JSON produces a syntax error, not validator errors
	err := bindPayload(t, `{"username":`)
	require.Error(t, err)

	assert.Nil(t, ValidationDetails(err))
}
