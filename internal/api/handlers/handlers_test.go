package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"teamloft/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func recordAPIError(t *testing.T, err error, fallback string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	handleAPIError(c, err, fallback)
	return w
}

func decodeError(t *testing.T, body []byte) (code, message string) {
	t.Helper()
	var envelope struct {
		Success bool `json:"success"`
		Error   *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	require.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	return envelope.Error.Code, envelope.Error.Message
}

func TestHandleAPIError_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"bad request", service.BadRequest("Invite not found"), http.StatusBadRequest, "BAD_REQUEST"},
		{"unauthorized", service.Unauthorized("Invalid credentials"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"not found", service.NotFound("No such team"), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", service.Conflict("Email already registered"), http.StatusConflict, "CONFLICT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := recordAPIError(t, tt.err, "fallback")
			require.Equal(t, tt.wantStatus, w.Code)

			code, message := decodeError(t, w.Body.Bytes())
			require.Equal(t, tt.wantCode, code)
			// The user-facing message survives, the fallback does not.
			require.Equal(t, tt.err.Error(), message)
		})
	}
}

func TestHandleAPIError_RecordNotFound(t *testing.T) {
	w := recordAPIError(t, gorm.ErrRecordNotFound, "fallback")
	require.Equal(t, http.StatusNotFound, w.Code)

	code, message := decodeError(t, w.Body.Bytes())
	require.Equal(t, "NOT_FOUND", code)
	require.Equal(t, "Resource not found", message)
}

func TestHandleAPIError_Opaque(t *testing.T) {
	w := recordAPIError(t, errors.New("pq: connection refused"), "Failed to load profile")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	code, message := decodeError(t, w.Body.Bytes())
	require.Equal(t, "INTERNAL_SERVER_ERROR", code)
	require.Equal(t, "Failed to load profile", message)
}
