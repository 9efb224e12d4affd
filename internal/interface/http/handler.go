package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/weatherfit/internal/domain/auth"
	"github.com/yanqian/weatherfit/internal/domain/forecast"
	"github.com/yanqian/weatherfit/internal/domain/location"
	"github.com/yanqian/weatherfit/internal/domain/outfit"
	"github.com/yanqian/weatherfit/internal/domain/wardrobe"
	apperrors "github.com/yanqian/weatherfit/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	authSvc     auth.Service
	wardrobeSvc wardrobe.Service
	locationSvc location.Service
	outfitSvc   outfit.Service
	forecastSvc forecast.Service
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(
	authSvc auth.Service,
	wardrobeSvc wardrobe.Service,
	locationSvc location.Service,
	outfitSvc outfit.Service,
	forecastSvc forecast.Service,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		authSvc:     authSvc,
		wardrobeSvc: wardrobeSvc,
		locationSvc: locationSvc,
		outfitSvc:   outfitSvc,
		forecastSvc: forecastSvc,
		logger:      logger.With("component", "http.handler"),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func bindError(err error) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, errMessage(err), err)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, "invalid id", err))
		return 0, false
	}
	return id, true
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}
