// Package adapters はsymbolsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"securities_master/internal/feature/symbols/domain/entity"
	"securities_master/internal/feature/symbols/usecase"
	"securities_master/internal/platform/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// symbolGorm はSymbolRepositoryインターフェースのgorm実装です。
type symbolGorm struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolGorm)(nil)

// NewSymbolRepository は指定されたDB接続でsymbolGormリポジトリの新しいインスタンスを生成します。
func NewSymbolRepository(gdb *gorm.DB) *symbolGorm {
	return &symbolGorm{db: gdb}
}

// Transaction はトランザクションに紐づいたストアでfnを実行します。
func (r *symbolGorm) Transaction(ctx context.Context, fn func(store usecase.SymbolStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&symbolTx{tx: tx})
	})
}

// List はティッカー順にすべての銘柄を返します。
func (r *symbolGorm) List(ctx context.Context) ([]entity.Symbol, error) {
	var rows []db.Symbol
	if err := r.db.WithContext(ctx).
		Preload("Exchange").
		Order("ticker ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Symbol, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

type symbolTx struct {
	tx *gorm.DB
}

var _ usecase.SymbolStore = (*symbolTx)(nil)

func (s *symbolTx) FindByKey(ctx context.Context, ticker string, exchangeID *uint) (*entity.Symbol, error) {
	q := s.tx.WithContext(ctx).Where("ticker = ?", ticker)
	if exchangeID == nil {
		q = q.Where("exchange_id IS NULL")
	} else {
		q = q.Where("exchange_id = ?", *exchangeID)
	}

	var m db.Symbol
	if err := q.Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	e := toEntity(m)
	return &e, nil
}

func (s *symbolTx) Create(ctx context.Context, e *entity.Symbol) error {
	m := toModel(*e)
	if err := s.tx.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return err
	}
	e.ID = m.ID
	return nil
}

// Update は可変属性を上書きします。
// 空文字も書き込むためmapで更新します。
func (s *symbolTx) Update(ctx context.Context, e *entity.Symbol) error {
	return s.tx.WithContext(ctx).
		Model(&db.Symbol{}).
		Where("id = ?", e.ID).
		Updates(map[string]any{
			"name":              e.Name,
			"sector":            e.Sector,
			"sub_industry":      e.SubIndustry,
			"headquarter":       e.Headquarter,
			"date_added":        e.DateAdded,
			"cik":               e.CIK,
			"founded":           e.Founded,
			"currency":          e.Currency,
			"last_updated_date": e.LastUpdatedDate,
		}).Error
}

func toModel(e entity.Symbol) db.Symbol {
	return db.Symbol{
		ID:              e.ID,
		ExchangeID:      e.ExchangeID,
		Ticker:          e.Ticker,
		Instrument:      e.Instrument,
		Name:            e.Name,
		Sector:          e.Sector,
		SubIndustry:     e.SubIndustry,
		Headquarter:     e.Headquarter,
		DateAdded:       e.DateAdded,
		CIK:             e.CIK,
		Founded:         e.Founded,
		Currency:        e.Currency,
		CreatedDate:     e.CreatedDate,
		LastUpdatedDate: e.LastUpdatedDate,
	}
}

func toEntity(m db.Symbol) entity.Symbol {
	e := entity.Symbol{
		ID:         m.ID,
		Ticker:     m.Ticker,
		ExchangeID: m.ExchangeID,
		Instrument: m.Instrument,
		Attributes: entity.Attributes{
			Name:        m.Name,
			Sector:      m.Sector,
			SubIndustry: m.SubIndustry,
			Headquarter: m.Headquarter,
			DateAdded:   m.DateAdded,
			CIK:         m.CIK,
			Founded:     m.Founded,
			Currency:    m.Currency,
		},
		CreatedDate:     m.CreatedDate.UTC(),
		LastUpdatedDate: m.LastUpdatedDate.UTC(),
	}
	if m.Exchange != nil {
		e.ExchangeAbbrev = m.Exchange.Abbrev
	}
	return e
}
