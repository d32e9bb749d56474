package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/harvestx-backend/internal/service"
	"go.uber.org/zap"
)

// Envelope wraps every /api response. Exactly one of Data and Error is set.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Error   *string     `json:"error"`
}

func ok(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Envelope{Success: true, Data: data})
}

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{Success: false, Error: &message})
}

// fail maps a service error onto its status and user facing message.
// Anything unrecognised is logged and reported as an internal error.
func fail(c echo.Context, log *zap.Logger, err error) error {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return errorJSON(c, http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, service.ErrAdminRequired):
		return errorJSON(c, http.StatusForbidden, "Admin access required")
	case errors.Is(err, service.ErrFarmerRequired):
		return errorJSON(c, http.StatusForbidden, "Farmer role required")
	case errors.Is(err, service.ErrInvestorRequired):
		return errorJSON(c, http.StatusForbidden, "Investor role required")
	case errors.Is(err, service.ErrNotOfferOwner):
		return errorJSON(c, http.StatusForbidden, "Access denied - not offer owner")
	case errors.Is(err, service.ErrForbidden):
		return errorJSON(c, http.StatusForbidden, "Forbidden")
	case errors.Is(err, service.ErrUserNotFound):
		return errorJSON(c, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrRequestNotFound):
		return errorJSON(c, http.StatusNotFound, "Investment request not found")
	case errors.Is(err, service.ErrNotFound):
		return errorJSON(c, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrAlreadyRegistered):
		return errorJSON(c, http.StatusConflict, "User already registered")
	case errors.Is(err, service.ErrInvalidOffer):
		return errorJSON(c, http.StatusBadRequest, "Invalid offer or insufficient quantity")
	case errors.Is(err, service.ErrAlreadyProcessed):
		return errorJSON(c, http.StatusConflict, "Request already processed")
	case errors.Is(err, service.ErrInvalidInput):
		return errorJSON(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUploadsDisabled):
		return errorJSON(c, http.StatusServiceUnavailable, "Image uploads are not configured")
	}
	log.Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err))
	return errorJSON(c, http.StatusInternalServerError, "Internal server error")
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}
