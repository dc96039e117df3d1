package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{NotFound("Business", ""), http.StatusNotFound},
		{Unauthorized("no"), http.StatusUnauthorized},
		{Database("insert", errors.New("boom")), http.StatusInternalServerError},
		{Generation("x", nil), http.StatusInternalServerError},
		{Enhancement(errors.New("quota")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestWrappedErrors(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("load: %w", Database("load business", cause))

	assert.True(t, Is(err, CodeDatabase))
	assert.False(t, Is(err, CodeNotFound))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("plain")))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "Business not found", MessageOf(NotFound("Business", "id 3"), "fallback"))
	assert.Equal(t, "fallback", MessageOf(Database("insert", errors.New("pq: secret detail")), "fallback"))
	assert.Equal(t, "fallback", MessageOf(errors.New("plain"), "fallback"))
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "NOT_FOUND: Business not found (id 3)", NotFound("Business", "id 3").Error())
	assert.Equal(t, "VALIDATION_FAILED: bad", Validation("bad").Error())
}
