package handler

import (
	"net/http"
	"strconv"

	"github.com/beaverschoice/supply-service/internal/dates"
	"github.com/beaverschoice/supply-service/internal/supply"
	"github.com/beaverschoice/supply-service/internal/supply/dto"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Handler struct {
	uc       supply.Usecase
	validate *validator.Validate
	logger   *zap.Logger
}

func NewHandler(uc supply.Usecase, validate *validator.Validate, logger *zap.Logger) *Handler {
	return &Handler{uc: uc, validate: validate, logger: logger}
}

func (h *Handler) MapRoutes(g *gin.RouterGroup) {
	g.POST("/assess", h.Assess)
	g.POST("", h.Execute)
	g.GET("/delivery-estimate", h.DeliveryEstimate)
}

func (h *Handler) Assess(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	date, substituted := dates.CutoffOrNow(req.Date)

	decision, err := h.uc.Assess(c.Request.Context(), req.ItemName, req.QuantityNeeded, date)
	if err != nil {
		h.logger.Error("reorder assessment failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if substituted {
		c.Header("X-Date-Substituted", "true")
	}
	c.JSON(http.StatusOK, decision)
}

func (h *Handler) Execute(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	date, substituted := dates.CutoffOrNow(req.Date)

	result, err := h.uc.Execute(c.Request.Context(), req.ItemName, req.QuantityNeeded, date)
	if err != nil {
		h.logger.Error("reorder execution failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if substituted {
		c.Header("X-Date-Substituted", "true")
	}
	status := http.StatusOK
	if result.Ordered {
		status = http.StatusCreated
	}
	c.JSON(status, result)
}

// DeliveryEstimate exposes the supplier lead time tiers directly.
func (h *Handler) DeliveryEstimate(c *gin.Context) {
	qty, err := strconv.ParseInt(c.Query("quantity"), 10, 64)
	if err != nil || qty <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be a positive integer"})
		return
	}
	from, substituted := dates.CutoffOrNow(c.Query("date"))

	if substituted {
		c.Header("X-Date-Substituted", "true")
	}
	c.JSON(http.StatusOK, gin.H{
		"lead_time_days": supply.LeadTimeDays(qty),
		"delivery_date":  dates.Day(supply.DeliveryDate(from, qty)),
	})
}

func (h *Handler) bind(c *gin.Context) (dto.ReorderRequest, bool) {
	var req dto.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, false
	}
	return req, true
}
