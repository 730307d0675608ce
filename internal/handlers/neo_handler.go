package handlers

import (
	"net/http"
	"strings"

	"neolink/internal/service"

	"github.com/gin-gonic/gin"
)

type NEOHandler struct {
	service service.DatasetService
}

func NewNEOHandler(service service.DatasetService) *NEOHandler {
	return &NEOHandler{service: service}
}

// GetNEO serves GET /neos/:designation.
func (h *NEOHandler) GetNEO(c *gin.Context) {
	ctx := c.Request.Context()

	detail, err := h.service.GetNEO(ctx, c.Param("designation"))
	if err != nil {
		respondError(c, err, "failed to get neo")
		return
	}

	c.JSON(http.StatusOK, detail.NEO)
}

// FindNEO serves GET /neos?name=.
func (h *NEOHandler) FindNEO(c *gin.Context) {
	ctx := c.Request.Context()

	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "name parameter is required",
		})
		return
	}

	detail, err := h.service.GetNEOByName(ctx, name)
	if err != nil {
		respondError(c, err, "failed to find neo")
		return
	}

	c.JSON(http.StatusOK, detail.NEO)
}

// GetNEOApproaches serves GET /neos/:designation/approaches.
func (h *NEOHandler) GetNEOApproaches(c *gin.Context) {
	ctx := c.Request.Context()

	detail, err := h.service.GetNEO(ctx, c.Param("designation"))
	if err != nil {
		respondError(c, err, "failed to get neo approaches")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"neo":        detail.NEO,
		"count":      len(detail.Approaches),
		"approaches": detail.Approaches,
	})
}
