package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/weatherfit/internal/domain/location"
)

func (h *Handler) ListLocations(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	locations, err := h.locationSvc.List(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": locations})
}

func (h *Handler) CreateLocation(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var input location.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, bindError(err))
		return
	}
	loc, err := h.locationSvc.Create(c.Request.Context(), userID, input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, loc)
}

// DefaultLocation returns the location flagged as default.
func (h *Handler) DefaultLocation(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	loc, err := h.locationSvc.Default(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, loc)
}

func (h *Handler) GetLocation(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	loc, err := h.locationSvc.Get(c.Request.Context(), userID, id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, loc)
}

func (h *Handler) UpdateLocation(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input location.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, bindError(err))
		return
	}
	loc, err := h.locationSvc.Update(c.Request.Context(), userID, id, input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, loc)
}

func (h *Handler) DeleteLocation(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.locationSvc.Delete(c.Request.Context(), userID, id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
