// Package adapters はpricesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"securities_master/internal/feature/prices/domain/entity"
	"securities_master/internal/feature/prices/usecase"
	"securities_master/internal/platform/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// insertBatchSize は1回のINSERT文に含める最大行数です。
const insertBatchSize = 500

// replacedColumns は (symbol_id, price_date) の行が既に存在する場合に上書きされるカラムです。
var replacedColumns = []string{
	"data_vendor_id", "created_date", "last_updated_date",
	"open_price", "high_price", "low_price", "close_price", "adj_close_price", "volume",
}

// priceGorm は日足テーブルに対するgorm実装です。
type priceGorm struct {
	db *gorm.DB
}

var (
	_ usecase.PriceRepository   = (*priceGorm)(nil)
	_ usecase.SymbolSource      = (*priceGorm)(nil)
	_ usecase.VendorRepository  = (*priceGorm)(nil)
	_ usecase.HistoryRepository = (*priceGorm)(nil)
)

// NewPriceRepository は指定されたDB接続でpriceGormの新しいインスタンスを生成します。
func NewPriceRepository(gdb *gorm.DB) *priceGorm {
	return &priceGorm{db: gdb}
}

func toModel(r entity.PriceRecord) db.DailyPrice {
	return db.DailyPrice{
		DataVendorID:    r.VendorID,
		SymbolID:        r.SymbolID,
		PriceDate:       r.Date,
		CreatedDate:     r.CreatedDate,
		LastUpdatedDate: r.LastUpdatedDate,
		OpenPrice:       r.Open,
		HighPrice:       r.High,
		LowPrice:        r.Low,
		ClosePrice:      r.Close,
		AdjClosePrice:   r.AdjClose,
		Volume:          r.Volume,
	}
}

// ReplaceBars は全レコードを1トランザクションで挿入または置換します。
// 既存行のIDは維持されます。
func (r *priceGorm) ReplaceBars(ctx context.Context, records []entity.PriceRecord) error {
	if len(records) == 0 {
		return nil
	}
	ms := make([]db.DailyPrice, 0, len(records))
	for _, rec := range records {
		ms = append(ms, toModel(rec))
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol_id"}, {Name: "price_date"}},
			DoUpdates: clause.AssignmentColumns(replacedColumns),
		}).Omit(clause.Associations).CreateInBatches(&ms, insertBatchSize).Error
	})
}

// ListTickers は登録済み銘柄をティッカー順に返します。
// tickersが空でない場合はその銘柄に絞り込みます。
func (r *priceGorm) ListTickers(ctx context.Context, tickers []string) ([]entity.TickerSymbol, error) {
	var rows []db.Symbol
	q := r.db.WithContext(ctx).Select("id", "ticker").Order("ticker ASC").Order("id ASC")
	if len(tickers) > 0 {
		q = q.Where("ticker IN ?", tickers)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.TickerSymbol, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.TickerSymbol{ID: m.ID, Ticker: m.Ticker})
	}
	return out, nil
}

// VendorIDByName はベンダー名からIDを解決します。
func (r *priceGorm) VendorIDByName(ctx context.Context, name string) (uint, error) {
	var v db.DataVendor
	if err := r.db.WithContext(ctx).Where("name = ?", name).Take(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, usecase.ErrVendorNotFound
		}
		return 0, err
	}
	return v.ID, nil
}

// FindSymbolID はティッカーから銘柄IDを解決します。
// 複数の取引所に上場している場合は最小のIDを返します。
func (r *priceGorm) FindSymbolID(ctx context.Context, ticker string) (uint, error) {
	var s db.Symbol
	if err := r.db.WithContext(ctx).
		Select("id").
		Where("ticker = ?", ticker).
		Order("id ASC").
		Take(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, usecase.ErrSymbolNotFound
		}
		return 0, err
	}
	return s.ID, nil
}

// Latest は指定銘柄の日足を新しい順に最大limit件返します。
func (r *priceGorm) Latest(ctx context.Context, symbolID uint, limit int) ([]entity.DailyBar, error) {
	var rows []db.DailyPrice
	q := r.db.WithContext(ctx).
		Where("symbol_id = ?", symbolID).
		Order("price_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.DailyBar, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.DailyBar{
			Date:     m.PriceDate.UTC(),
			Open:     m.OpenPrice,
			High:     m.HighPrice,
			Low:      m.LowPrice,
			Close:    m.ClosePrice,
			AdjClose: m.AdjClosePrice,
			Volume:   m.Volume,
		})
	}
	return out, nil
}
