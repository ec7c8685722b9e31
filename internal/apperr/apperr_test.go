package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{"invalid input", InvalidInput("Invalid URL", nil), KindInvalidInput},
		{"not found", NotFound("URL not found", cause), KindNotFound},
		{"internal", Internal("Database error", cause), KindInternal},
		{"wrapped", fmt.Errorf("save: %w", NotFound("URL not found", nil)), KindNotFound},
		{"plain error", cause, KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOf(tt.err))
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	sentinel := errors.New("short code already exists")
	err := Internal("Database error", sentinel)

	assert.True(t, errors.Is(err, sentinel))
	assert.Equal(t, "Database error: short code already exists", err.Error())
	assert.Equal(t, "Database error", Message(err))
}

func TestMessage_PlainError(t *testing.T) {
	assert.Equal(t, "Internal server error", Message(errors.New("boom")))
	assert.Equal(t, "URL not found", NotFound("URL not found", nil).Error())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "invalid_input", KindInvalidInput.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "internal", KindInternal.String())
}
