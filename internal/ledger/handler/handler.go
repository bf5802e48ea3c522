package handler

import (
	"errors"
	"net/http"

	"github.com/beaverschoice/supply-service/internal/dates"
	"github.com/beaverschoice/supply-service/internal/ledger"
	"github.com/beaverschoice/supply-service/internal/ledger/dto"
	"github.com/beaverschoice/supply-service/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Handler struct {
	uc       ledger.Usecase
	validate *validator.Validate
	logger   *zap.Logger
}

func NewHandler(uc ledger.Usecase, validate *validator.Validate, logger *zap.Logger) *Handler {
	return &Handler{uc: uc, validate: validate, logger: logger}
}

func (h *Handler) MapRoutes(g *gin.RouterGroup) {
	g.POST("/entries", h.AppendEntry)
	g.GET("/entries", h.ListEntries)
	g.GET("/stock", h.AllStock)
	g.GET("/stock/:item", h.StockStatus)
	g.GET("/cash", h.CashBalance)
	g.GET("/valuation", h.Valuation)
	g.GET("/anomalies", h.Anomalies)
}

func (h *Handler) AppendEntry(c *gin.Context) {
	var req dto.AppendEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
		return
	}
	date, substituted := dates.CutoffOrNow(req.Date)

	id, err := h.uc.Append(c.Request.Context(), ledger.AppendInput{
		ItemName: req.ItemName,
		Kind:     model.EntryKind(req.Kind),
		Units:    req.Units,
		Price:    price,
		Date:     date,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidEntry) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("append entry failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if substituted {
		c.Header("X-Date-Substituted", "true")
	}
	c.JSON(http.StatusCreated, dto.AppendEntryResponse{ID: id})
}

func (h *Handler) ListEntries(c *gin.Context) {
	until, substituted := dates.CutoffOrNow(c.Query("as_of"))

	f := ledger.Filter{Until: until}
	if item := c.Query("item_name"); item != "" {
		f.ItemName = &item
	}
	if kind := c.Query("kind"); kind != "" {
		k := model.EntryKind(kind)
		if !k.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unrecognized kind"})
			return
		}
		f.Kind = &k
	}

	entries, err := h.uc.Entries(c.Request.Context(), f)
	if err != nil {
		h.logger.Error("list entries failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if substituted {
		c.Header("X-Date-Substituted", "true")
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *Handler) StockStatus(c *gin.Context) {
	until, substituted := dates.CutoffOrNow(c.Query("as_of"))

	status, err := h.uc.StockStatus(c.Request.Context(), c.Param("item"), until)
	if err != nil {
		h.logger.Error("stock status failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if substituted {
		c.Header("X-Date-Substituted", "true")
	}
	c.JSON(http.StatusOK, status)
}

func (h *Handler) AllStock(c *gin.Context) {
	until, substituted := dates.CutoffOrNow(c.Query("as_of"))

	stock, err := h.uc.AllStockAsOf(c.Request.Context(), until)
	if err != nil {
		h.logger.Error("all stock failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if substituted {
		c.Header("X-Date-Substituted", "true")
	}
	c.JSON(http.StatusOK, gin.H{"stock": stock})
}

func (h *Handler) CashBalance(c *gin.Context) {
	until, substituted := dates.CutoffOrNow(c.Query("as_of"))

	balance, err := h.uc.CashBalanceAsOf(c.Request.Context(), until)
	if err != nil {
		h.logger.Error("cash balance failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if substituted {
		c.Header("X-Date-Substituted", "true")
	}
	c.JSON(http.StatusOK, gin.H{"cash_balance": balance})
}

func (h *Handler) Valuation(c *gin.Context) {
	until, substituted := dates.CutoffOrNow(c.Query("as_of"))

	breakdown, total, err := h.uc.InventoryValuation(c.Request.Context(), until)
	if err != nil {
		h.logger.Error("inventory valuation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if substituted {
		c.Header("X-Date-Substituted", "true")
	}
	c.JSON(http.StatusOK, gin.H{"total_value": total, "items": breakdown})
}

func (h *Handler) Anomalies(c *gin.Context) {
	until, substituted := dates.CutoffOrNow(c.Query("as_of"))

	anomalies, err := h.uc.NegativeStockAsOf(c.Request.Context(), until)
	if err != nil {
		h.logger.Error("anomaly probe failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if substituted {
		c.Header("X-Date-Substituted", "true")
	}
	c.JSON(http.StatusOK, gin.H{"anomalies": anomalies})
}
