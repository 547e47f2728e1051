package router

import (
	pricehandler "securities_master/internal/feature/prices/transport/handler"
	symbolhandler "securities_master/internal/feature/symbols/transport/handler"
	"securities_master/internal/platform/http/handler"

	"github.com/gin-gonic/gin"
)

// NewRouter は読み取り専用APIのルーティングを登録します。ここから書き込みは行いません。
func NewRouter(health *handler.HealthHandler, symbols *symbolhandler.SymbolHandler,
	prices *pricehandler.PriceHandler) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	r.GET("/healthz", health.Health)
	r.HEAD("/healthz", health.Health)
	r.OPTIONS("/healthz", health.Health)

	r.GET("/symbols", symbols.List)
	r.GET("/prices/:ticker", prices.GetPrices)

	return r
}
