package handler

import (
	"net/http"

	"github.com/beaverschoice/supply-service/internal/dates"
	"github.com/beaverschoice/supply-service/internal/finance"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	uc     finance.Usecase
	logger *zap.Logger
}

func NewHandler(uc finance.Usecase, logger *zap.Logger) *Handler {
	return &Handler{uc: uc, logger: logger}
}

func (h *Handler) MapRoutes(g *gin.RouterGroup) {
	g.GET("/financial", h.FinancialReport)
}

func (h *Handler) FinancialReport(c *gin.Context) {
	asOf, substituted := dates.CutoffOrNow(c.Query("as_of"))

	report, err := h.uc.Report(c.Request.Context(), asOf)
	if err != nil {
		h.logger.Error("financial report failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if substituted {
		c.Header("X-Date-Substituted", "true")
	}
	c.JSON(http.StatusOK, report)
}
