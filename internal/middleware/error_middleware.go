package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oseghale/unireg/internal/app/models/dto"
	"github.com/oseghale/unireg/internal/pkg/apperrors"
	"github.com/oseghale/unireg/internal/pkg/logger"
)

func errorCodeForStatus(status int) dto.ErrorCode {
	switch status {
	case http.StatusBadRequest:
		return dto.ErrorCodeBadRequest
	case http.StatusUnauthorized:
		return dto.ErrorCodeUnauthorized
	case http.StatusForbidden:
		return dto.ErrorCodeForbidden
	case http.StatusNotFound:
		return dto.ErrorCodeNotFound
	default:
		return dto.ErrorCodeInternalServer
	}
}

// HandleAPIError maps a service error onto the standard error response.
// Anything that is not a RequestError or a known sentinel becomes an opaque
// 500 so internal detail never leaks to clients.
func HandleAPIError(c *gin.Context, err error) {
	if reqErr, ok := apperrors.AsRequestError(err); ok {
		detail := dto.NewErrorDetail(errorCodeForStatus(reqErr.Status), reqErr.Message)
		c.JSON(reqErr.Status, dto.NewErrorResponse(detail))
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeNotFound, "Resource not found")))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Invalid credentials")))
	case errors.Is(err, apperrors.ErrTokenExpired), errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrTokenWrongType):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Invalid token")))
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
