package handler

import (
	"net/http"

	"github.com/beaverschoice/supply-service/internal/fulfillment"
	"github.com/beaverschoice/supply-service/internal/fulfillment/dto"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Handler struct {
	uc       fulfillment.Usecase
	validate *validator.Validate
	logger   *zap.Logger
}

func NewHandler(uc fulfillment.Usecase, validate *validator.Validate, logger *zap.Logger) *Handler {
	return &Handler{uc: uc, validate: validate, logger: logger}
}

func (h *Handler) MapRoutes(g *gin.RouterGroup) {
	g.POST("", h.ProcessOrder)
}

func (h *Handler) ProcessOrder(c *gin.Context) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.uc.Process(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("order processing failed",
			zap.String("request_id", req.RequestID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, result)
}
