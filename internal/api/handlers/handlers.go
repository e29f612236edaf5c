package handlers

import (
	"errors"
	"net/http"

	"teamloft/internal/api/dto/common"
	"teamloft/internal/api/validation"
	"teamloft/internal/logging"
	"teamloft/internal/service"
	"teamloft/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// handleBindingError writes the standard validation failure envelope for a
// request body that failed binding.
func handleBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, common.NewErrorResponse(
		common.ErrCodeValidation,
		"Invalid request body",
		validation.FormatValidationError(err),
	))
}

// handleAPIError translates service and storage errors into the standard
// error envelope. Business-rule errors keep their user-facing message; record
// lookups map to 404; everything else is opaque.
func handleAPIError(c *gin.Context, err error, fallback string) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		status, code := statusForCode(svcErr.Code)
		c.JSON(status, common.NewErrorResponse(code, svcErr.Message, nil))
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, common.NewErrorResponse(common.ErrCodeNotFound, "Resource not found", nil))
		return
	}

	logger := logging.GetLogger()
	logger.LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		utils.GetRealIP(c),
		http.StatusInternalServerError,
		fallback,
		err,
	)

	// Don't expose internals in production.
	var details interface{}
	if gin.Mode() != gin.ReleaseMode {
		details = err.Error()
	}
	c.JSON(http.StatusInternalServerError, common.NewErrorResponse(common.ErrCodeInternalServer, fallback, details))
}

func statusForCode(code service.ErrorCode) (int, common.ErrorCode) {
	switch code {
	case service.CodeUnauthorized:
		return http.StatusUnauthorized, common.ErrCodeUnauthorized
	case service.CodeNotFound:
		return http.StatusNotFound, common.ErrCodeNotFound
	case service.CodeConflict:
		return http.StatusConflict, common.ErrCodeConflict
	default:
		return http.StatusBadRequest, common.ErrCodeBadRequest
	}
}
