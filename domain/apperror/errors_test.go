package apperror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigurationError_ListsMissingKeys(t *testing.T) {
	err := &ConfigurationError{Missing: []string{"FACEBOOK_APP_ID", "REDIRECT_URI"}}
	assert.Equal(t, "missing configuration: FACEBOOK_APP_ID, REDIRECT_URI", err.Error())
}

func TestValidationError_Message(t *testing.T) {
	assert.Equal(t, "message: is required", NewValidationError("message", "is required").Error())
	assert.Equal(t, "bad body", (&ValidationError{Message: "bad body"}).Error())
}

func TestLinkError_UnwrapAndUserFacing(t *testing.T) {
	cause := errors.New("boom")
	err := &LinkError{Kind: LinkProvider, Stage: "TokenExchanged", Message: "pages lookup failed", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.False(t, err.UserFacing())
	assert.Contains(t, err.Error(), "TokenExchanged")

	pages := &LinkError{Kind: LinkNoLinkedPages, Stage: "TokenExchanged", Message: "No Facebook Pages found"}
	assert.True(t, pages.UserFacing())

	var target *LinkError
	assert.True(t, errors.As(error(pages), &target))
	assert.Equal(t, LinkNoLinkedPages, target.Kind)
}
