package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"collabhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", service.ErrNotFound, http.StatusNotFound},
		{"forbidden", service.ErrForbidden, http.StatusForbidden},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"email taken", service.ErrEmailTaken, http.StatusConflict},
		{"own post join", service.ErrOwnPostJoin, http.StatusConflict},
		{"completed post", service.ErrPostCompleted, http.StatusConflict},
		{"bad transition", service.ErrInvalidTransition, http.StatusConflict},
		{"bad role", service.ErrInvalidRole, http.StatusBadRequest},
		{"bad post type", service.ErrInvalidPostType, http.StatusBadRequest},
		{"bad post status", service.ErrInvalidPostStatus, http.StatusBadRequest},
		{"empty content", service.ErrEmptyContent, http.StatusBadRequest},
		{"too long", service.ErrContentTooLong, http.StatusBadRequest},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tc.err)
			assert.Equal(t, tc.code, w.Code)
		})
	}

	// Internal errors must not leak their message.
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, errors.New("dial tcp: connection refused"))
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	_, ok := parseIDParam(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
