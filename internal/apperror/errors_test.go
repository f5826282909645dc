package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidation("duration must be positive"), http.StatusBadRequest},
		{"conflict", NewResourceConflict(1, "overlap"), http.StatusConflict},
		{"invalid state", NewInvalidState("cancel", "completed"), http.StatusConflict},
		{"timeout", NewTimeout(1, 2*time.Second), http.StatusServiceUnavailable},
		{"not found", NewNotFound("booking", 9), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestHTTPStatusUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("allocate: %w", NewResourceConflict(3, "overlap"))
	assert.Equal(t, http.StatusConflict, HTTPStatus(wrapped))

	var conflict *ConflictError
	require.ErrorAs(t, wrapped, &conflict)
	assert.Equal(t, uint(3), conflict.ResourceID)
}

func TestConflictErrorMessageNamesResource(t *testing.T) {
	assert.Equal(t, "resource 5: overlap", NewResourceConflict(5, "overlap").Error())
	assert.Equal(t, "duplicate identifier", NewConflict("duplicate identifier").Error())
}
