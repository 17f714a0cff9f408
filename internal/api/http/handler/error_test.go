package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/inkwell/inkwell-server/internal/model"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation maps to 400",
			err:        model.NewValidationError("title is required"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"title is required"}`,
		},
		{
			name:       "duplicate maps to 409",
			err:        model.NewDuplicateError("username"),
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"username already exists"}`,
		},
		{
			name:       "not found maps to 404",
			err:        model.NewNotFoundError("post"),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"post not found"}`,
		},
		{
			name:       "unauthorized maps to 401",
			err:        model.NewUnauthorizedError("invalid credentials"),
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"invalid credentials"}`,
		},
		{
			name:       "forbidden maps to 403",
			err:        model.NewForbiddenError("post belongs to another author"),
			wantStatus: http.StatusForbidden,
			wantBody:   `{"error":"post belongs to another author"}`,
		},
		{
			name:       "disabled account maps to 403",
			err:        model.NewDisabledError(),
			wantStatus: http.StatusForbidden,
			wantBody:   `{"error":"account is deactivated"}`,
		},
		{
			name:       "expired token maps to 401",
			err:        model.ErrTokenExpired,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"invalid token"}`,
		},
		{
			name:       "revoked token maps to 401",
			err:        model.ErrTokenRevoked,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"invalid token"}`,
		},
		{
			name:       "store sentinel maps to 404",
			err:        model.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"not found"}`,
		},
		{
			name:       "internal detail never leaks",
			err:        model.NewInternalError(errors.New("dial tcp: connection refused")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"internal error"}`,
		},
		{
			name:       "unclassified error is internal",
			err:        errors.New("dial tcp: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"internal error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			respondError(c, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
