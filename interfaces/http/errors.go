package http

import (
	"errors"
	"net/http"

	"ig-dashboard/domain/apperror"
	"ig-dashboard/domain/dto"
	"ig-dashboard/infrastructure/clients/graph"
	"ig-dashboard/infrastructure/logger"

	"github.com/gin-gonic/gin"
)

// respondError maps usecase errors onto status codes. fallback is the
// message for anything unrecognized.
func respondError(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)

	var (
		validationErr *apperror.ValidationError
		apiErr        *graph.APIError
		cfgErr        *apperror.ConfigurationError
	)
	switch {
	case errors.Is(err, apperror.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
	case errors.Is(err, apperror.ErrNotConnected):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Instagram account not connected properly"})
	case errors.Is(err, apperror.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Not found"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: validationErr.Message, Field: validationErr.Field})
	case errors.As(err, &apiErr):
		status := apiErr.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		c.JSON(status, dto.ErrorResponse{Message: "Instagram API Error", Error: apiErr.Message, Details: apiErr.Payload})
	case errors.As(err, &cfgErr):
		logger.GetLogger().WithField("error", err).Error("Service is missing configuration")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Server configuration error", Error: cfgErr.Error()})
	default:
		logger.GetLogger().WithField("error", err).Error(fallback)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: fallback})
	}
}

// linkErrorStatus picks the callback status: user-fixable failures are 400,
// provider rejections 502, everything else 500.
func linkErrorStatus(le *apperror.LinkError) int {
	if le.UserFacing() {
		return http.StatusBadRequest
	}
	var apiErr *graph.APIError
	if le.Kind == apperror.LinkProvider && errors.As(le.Err, &apiErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func linkErrorResponse(le *apperror.LinkError) dto.LinkErrorResponse {
	res := dto.LinkErrorResponse{
		Message:    le.Message,
		Suggestion: le.Suggestion,
		Error:      string(le.Kind),
	}
	var apiErr *graph.APIError
	switch {
	case errors.As(le.Err, &apiErr) && len(apiErr.Payload) > 0:
		res.Details = apiErr.Payload
	case le.Details != "":
		res.Details = le.Details
	}
	return res
}
