package handler

import (
	"net/http"

	"github.com/beaverschoice/supply-service/internal/catalog"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	uc     catalog.Usecase
	logger *zap.Logger
}

func NewHandler(uc catalog.Usecase, logger *zap.Logger) *Handler {
	return &Handler{uc: uc, logger: logger}
}

func (h *Handler) MapRoutes(g *gin.RouterGroup) {
	g.GET("/items", h.ListItems)
	g.GET("/inventory-records", h.ListInventoryRecords)
}

func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.uc.ListItems(c.Request.Context())
	if err != nil {
		h.logger.Error("list catalog items failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) ListInventoryRecords(c *gin.Context) {
	records, err := h.uc.ListInventoryRecords(c.Request.Context())
	if err != nil {
		h.logger.Error("list inventory records failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}
