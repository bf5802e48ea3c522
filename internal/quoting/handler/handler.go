package handler

import (
	"net/http"

	"github.com/beaverschoice/supply-service/internal/model"
	"github.com/beaverschoice/supply-service/internal/quoting"
	"github.com/beaverschoice/supply-service/internal/quoting/dto"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Handler struct {
	uc       quoting.Usecase
	validate *validator.Validate
	logger   *zap.Logger
}

func NewHandler(uc quoting.Usecase, validate *validator.Validate, logger *zap.Logger) *Handler {
	return &Handler{uc: uc, validate: validate, logger: logger}
}

func (h *Handler) MapRoutes(g *gin.RouterGroup) {
	g.POST("/price", h.Price)
	g.POST("/history/search", h.SearchHistory)
}

func (h *Handler) Price(c *gin.Context) {
	var req dto.PriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	size := req.OrderSize
	if size == "" {
		var totalUnits int64
		for _, line := range req.Lines {
			totalUnits += line.Quantity
		}
		size = model.ClassifyOrderSize(totalUnits)
	}

	order, err := h.uc.Price(c.Request.Context(), req.Lines, size)
	if err != nil {
		h.logger.Error("pricing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) SearchHistory(c *gin.Context) {
	var req dto.HistorySearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quotes, err := h.uc.SearchHistory(c.Request.Context(), req.Terms, req.Limit)
	if err != nil {
		h.logger.Error("history search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotes": quotes})
}
