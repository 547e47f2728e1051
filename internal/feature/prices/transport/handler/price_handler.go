// Package handler はpricesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"securities_master/internal/feature/prices/domain/entity"
	"securities_master/internal/feature/prices/transport/http/dto"
	"securities_master/internal/feature/prices/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	// DefaultLimit はlimitクエリパラメータが省略された場合の件数です。
	DefaultLimit = 30
	// MaxLimit は1レスポンスあたりの上限件数です。
	MaxLimit = 5000

	pricePlaces = 4
)

// HistoryUsecase は日足履歴取得のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type HistoryUsecase interface {
	Latest(ctx context.Context, ticker string, limit int) ([]entity.DailyBar, error)
}

// PriceHandler は日足データのHTTPリクエストを処理します。
type PriceHandler struct {
	uc HistoryUsecase
}

// NewPriceHandler は指定されたusecaseでPriceHandlerを生成します。
func NewPriceHandler(uc HistoryUsecase) *PriceHandler {
	return &PriceHandler{uc: uc}
}

// GetPrices はティッカーの直近の日足を新しい順にJSONで返します。
//
// エンドポイント例:
// GET /prices/:ticker?limit=30
func (h *PriceHandler) GetPrices(c *gin.Context) {
	limit := DefaultLimit
	if s, ok := c.GetQuery("limit"); ok {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > MaxLimit {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "limit must be an integer between 1 and 5000"})
			return
		}
		limit = n
	}

	ticker := c.Param("ticker")
	bars, err := h.uc.Latest(c.Request.Context(), ticker, limit)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidTicker):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, usecase.ErrSymbolNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "symbol not found"})
		default:
			slog.Error("failed to load prices", "ticker", ticker, "error", err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to load prices"})
		}
		return
	}

	out := dto.PriceHistoryResponse{Ticker: strings.ToUpper(ticker), Prices: make([]dto.PriceItem, 0, len(bars))}
	for _, b := range bars {
		out.Prices = append(out.Prices, dto.PriceItem{
			Date:     b.Date.UTC().Format(time.DateOnly),
			Open:     price(b.Open),
			High:     price(b.High),
			Low:      price(b.Low),
			Close:    price(b.Close),
			AdjClose: price(b.AdjClose),
			Volume:   b.Volume,
		})
	}
	c.JSON(http.StatusOK, out)
}

func price(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(pricePlaces)
}
