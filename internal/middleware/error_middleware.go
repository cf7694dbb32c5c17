package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retrieverhq/retriever-study/internal/app/models/dto"
	"github.com/retrieverhq/retriever-study/internal/pkg/apperrors"
)

// HandleAPIError maps application errors onto HTTP responses. Services
// return sentinel errors (optionally wrapped in CustomError for
// context); this is the single place that knows their status codes.
func HandleAPIError(c *gin.Context, err error) {
	detail := errorDetailFor(err)

	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) {
		if customErr.Message != "" {
			detail.Message = customErr.Message
		}
		if customErr.Details != nil {
			detail = detail.WithDetails(customErr.Details)
		}
	}

	c.JSON(statusFor(err), dto.NewErrorResponse(detail))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrGroupNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrMessageNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrGroupFull):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrEmptyQuery),
		errors.Is(err, apperrors.ErrToxicContent):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrDomainNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrProviderUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func errorDetailFor(err error) *dto.ErrorDetail {
	switch {
	case errors.Is(err, apperrors.ErrGroupNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Study group not found")
	case errors.Is(err, apperrors.ErrUserNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrMessageNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Message not found")
	case errors.Is(err, apperrors.ErrGroupFull):
		return dto.NewErrorDetail(dto.ErrorCodeGroupFull, "Study group is at full capacity")
	case errors.Is(err, apperrors.ErrToxicContent):
		return dto.NewErrorDetail(dto.ErrorCodeToxicContent, "Message was flagged as toxic")
	case errors.Is(err, apperrors.ErrEmptyQuery):
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Search query cannot be empty").WithField("q")
	case errors.Is(err, apperrors.ErrValidationFailed):
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrDomainNotAllowed):
		return dto.NewErrorDetail(dto.ErrorCodeDomainNotAllowed, "Email domain is not allowed")
	case errors.Is(err, apperrors.ErrProviderUnavailable):
		return dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "AI provider is unavailable")
	default:
		return dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
