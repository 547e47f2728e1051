// Package yahoo はYahoo Finance chart APIのクライアントを提供します。
package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"securities_master/internal/feature/prices/adapters/yahoo/dto"
	"securities_master/internal/feature/prices/domain/entity"
	"securities_master/internal/feature/prices/usecase"
)

// DefaultBaseURL は公開chart APIのホストです。
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// ErrNoChartData はレスポンスに結果もエラーも含まれない場合に返されます。
var ErrNoChartData = errors.New("yahoo: empty chart result")

// Config はYahoo Financeクライアントの設定を保持します。
type Config struct {
	BaseURL string        // 例: "https://query1.finance.yahoo.com"
	Timeout time.Duration // HTTPリクエストのタイムアウト
}

// Client はYahoo Finance chart APIから日足を取得するChartSource実装です。
type Client struct {
	cfg    Config
	client *http.Client
	now    func() time.Time
}

// ClientがChartSourceを実装していることをコンパイル時に検証します。
var _ usecase.ChartSource = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{cfg: cfg, client: client, now: time.Now}
}

// DailyBars はfromからtoまで（両端を含む）の分割・配当調整済み日足を取得します。
// いずれかのカラムがnullの行はスキップします。
func (c *Client) DailyBars(ctx context.Context, ticker string, from, to time.Time) ([]entity.DailyBar, error) {
	q := url.Values{}
	q.Set("period1", strconv.FormatInt(entity.TruncateDay(from).Unix(), 10))
	q.Set("period2", strconv.FormatInt(entity.TruncateDay(to).AddDate(0, 0, 1).Unix(), 10))
	q.Set("interval", "1d")
	q.Set("events", "history")
	q.Set("includeAdjustedClose", "true")

	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.cfg.BaseURL, url.PathEscape(ticker), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("yahoo http %d", res.StatusCode)
	}

	var body dto.ChartResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode chart %s: %w", ticker, err)
	}
	if e := body.Chart.Error; e != nil {
		return nil, fmt.Errorf("yahoo: %s: %s", e.Code, e.Description)
	}
	if len(body.Chart.Result) == 0 {
		return nil, ErrNoChartData
	}
	return toBars(body.Chart.Result[0], c.now())
}

func toBars(r dto.ChartResult, now time.Time) ([]entity.DailyBar, error) {
	if len(r.Timestamp) == 0 || len(r.Indicators.Quote) == 0 {
		return nil, nil
	}
	quote := r.Indicators.Quote[0]
	var adj []*float64
	if len(r.Indicators.AdjClose) > 0 {
		adj = r.Indicators.AdjClose[0].AdjClose
	}

	bars := make([]entity.DailyBar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		o, okO := at(quote.Open, i)
		h, okH := at(quote.High, i)
		l, okL := at(quote.Low, i)
		cl, okC := at(quote.Close, i)
		a, okA := at(adj, i)
		vol, okV := at(quote.Volume, i)
		if !okO || !okH || !okL || !okC || !okV || !okA {
			continue
		}

		bar, err := entity.NewDailyBar(time.Unix(ts, 0), o, h, l, cl, a, vol, now)
		if err != nil {
			return nil, err
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

func at[T any](s []*T, i int) (T, bool) {
	var zero T
	if i >= len(s) || s[i] == nil {
		return zero, false
	}
	return *s[i], true
}
