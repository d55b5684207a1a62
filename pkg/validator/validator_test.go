package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type videoRequest struct {
	URL string `json:"url" validate:"required,httpurl"`
}

func TestValidate_HTTPURL(t *testing.T) {
	v := New()

	for _, ok := range []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"http://youtu.be/abc",
	} {
		assert.NoError(t, v.Validate(&videoRequest{URL: ok}), ok)
	}

	for _, bad := range []string{
		"",
		"youtube.com/watch?v=abc",
		"ftp://example.com/a.webm",
		"https://",
		"file:///etc/passwd",
	} {
		assert.Error(t, v.Validate(&videoRequest{URL: bad}), bad)
	}
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	err := New().Validate(&videoRequest{})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "url", verrs[0].Field())
	assert.Equal(t, "required", verrs[0].Tag())
}
