package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func respondStatus(err error) int {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondError(c, err)
	return rec.Code
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrNotFound, http.StatusNotFound},
		{ErrConflict, http.StatusConflict},
		{ErrForbidden, http.StatusForbidden},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, respondStatus(tc.err), "error %v", tc.err)
	}
}

func TestRespondErrorUnwrapsWrappedSentinels(t *testing.T) {
	wrapped := fmt.Errorf("service abc: %w", ErrNotFound)
	assert.Equal(t, http.StatusNotFound, respondStatus(wrapped))

	doubleWrapped := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", ErrConflict))
	assert.Equal(t, http.StatusConflict, respondStatus(doubleWrapped))
}
