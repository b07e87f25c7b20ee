package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "with cause",
			err:  NewParsingError("bad workbook", fmt.Errorf("zip: not a valid zip file")),
			want: "[PARSING] bad workbook: zip: not a valid zip file",
		},
		{
			name: "without cause",
			err:  NewValidationError("missing column"),
			want: "[VALIDATION] missing column",
		},
		{
			name: "config with cause",
			err:  NewConfigError("config validation failed", fmt.Errorf("Level must be one of")),
			want: "[CONFIG] config validation failed: Level must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := NewStorageError("write failed", cause)

	require.ErrorIs(t, err, cause)

	var appErr *AppError
	require.True(t, stderrors.As(fmt.Errorf("wrapped: %w", err), &appErr))
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewParsingError("bad file", nil).
		WithContext("path", "/data/S1.xlsx").
		WithContext("row", 7)

	assert.Equal(t, "/data/S1.xlsx", err.Context["path"])
	assert.Equal(t, 7, err.Context["row"])
}
