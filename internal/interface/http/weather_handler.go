package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/weatherfit/internal/domain/forecast"
	"github.com/yanqian/weatherfit/internal/domain/outfit"
)

// Recommendation turns a single conditions snapshot into advice lines.
func (h *Handler) Recommendation(c *gin.Context) {
	var conditions forecast.Conditions
	if err := c.ShouldBindJSON(&conditions); err != nil {
		abortWithError(c, bindError(err))
		return
	}
	c.JSON(http.StatusOK, h.forecastSvc.Recommend(c.Request.Context(), conditions))
}

// Forecast fetches the hourly outlook and summarizes the next window.
func (h *Handler) Forecast(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req forecast.HourlyRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		abortWithError(c, bindError(err))
		return
	}
	resp, err := h.forecastSvc.HourlyAdvice(c.Request.Context(), userID, req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SuggestOutfit assembles an outfit from the caller's wardrobe for the given weather.
func (h *Handler) SuggestOutfit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req outfit.SuggestRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		abortWithError(c, bindError(err))
		return
	}
	weather := outfit.UnknownWeather()
	if req.Weather != nil {
		weather = *req.Weather
	}
	suggestion, err := h.outfitSvc.Suggest(c.Request.Context(), userID, weather)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestion)
}

// bindOptionalJSON treats an empty body as the zero request.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
