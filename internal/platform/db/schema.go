package db

import "time"

// Exchange is a listing venue. Rows are reference data seeded by Seed.
type Exchange struct {
	ID              uint      `gorm:"primaryKey"`
	Abbrev          string    `gorm:"column:abbrev;size:32;not null;uniqueIndex"`
	Name            string    `gorm:"column:name;size:255;not null"`
	City            string    `gorm:"column:city;size:255"`
	Country         string    `gorm:"column:country;size:255"`
	Currency        string    `gorm:"column:currency;size:64;default:USD"`
	TimezoneOffset  string    `gorm:"column:timezone_offset;size:16"`
	CreatedDate     time.Time `gorm:"column:created_date;not null"`
	LastUpdatedDate time.Time `gorm:"column:last_updated_date;not null"`
}

func (Exchange) TableName() string { return "exchange" }

// DataVendor is a price source.
type DataVendor struct {
	ID              uint      `gorm:"primaryKey"`
	Name            string    `gorm:"column:name;size:64;not null;uniqueIndex"`
	WebsiteURL      string    `gorm:"column:website_url;size:255"`
	SupportEmail    string    `gorm:"column:support_email;size:255"`
	CreatedDate     time.Time `gorm:"column:created_date;not null"`
	LastUpdatedDate time.Time `gorm:"column:last_updated_date;not null"`
}

func (DataVendor) TableName() string { return "data_vendor" }

// Symbol is a tradable instrument. (ticker, exchange_id) is the natural key;
// deleting the exchange nulls exchange_id.
type Symbol struct {
	ID              uint      `gorm:"primaryKey"`
	ExchangeID      *uint     `gorm:"column:exchange_id;uniqueIndex:uq_symbol_ticker_exchange,priority:2"`
	Exchange        *Exchange `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Ticker          string    `gorm:"column:ticker;size:32;not null;uniqueIndex:uq_symbol_ticker_exchange,priority:1"`
	Instrument      string    `gorm:"column:instrument;size:64;not null"`
	Name            string    `gorm:"column:name;size:255"`
	Sector          string    `gorm:"column:sector;size:255"`
	SubIndustry     string    `gorm:"column:sub_industry;size:255"`
	Headquarter     string    `gorm:"column:headquarter;size:255"`
	DateAdded       string    `gorm:"column:date_added;size:32"`
	CIK             string    `gorm:"column:cik;size:32"`
	Founded         string    `gorm:"column:founded;size:64"`
	Currency        string    `gorm:"column:currency;size:32;default:USD"`
	CreatedDate     time.Time `gorm:"column:created_date;not null"`
	LastUpdatedDate time.Time `gorm:"column:last_updated_date;not null"`
}

func (Symbol) TableName() string { return "symbol" }

// DailyPrice is one end-of-day bar. (symbol_id, price_date) is the natural
// key; deleting the symbol or the vendor removes the bar.
type DailyPrice struct {
	ID              uint        `gorm:"primaryKey"`
	DataVendorID    uint        `gorm:"column:data_vendor_id;not null"`
	DataVendor      *DataVendor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	SymbolID        uint        `gorm:"column:symbol_id;not null;uniqueIndex:uq_daily_price_symbol_date,priority:1"`
	Symbol          *Symbol     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	PriceDate       time.Time   `gorm:"column:price_date;not null;uniqueIndex:uq_daily_price_symbol_date,priority:2"`
	CreatedDate     time.Time   `gorm:"column:created_date;not null"`
	LastUpdatedDate time.Time   `gorm:"column:last_updated_date;not null"`
	OpenPrice       float64     `gorm:"column:open_price"`
	HighPrice       float64     `gorm:"column:high_price"`
	LowPrice        float64     `gorm:"column:low_price"`
	ClosePrice      float64     `gorm:"column:close_price"`
	AdjClosePrice   float64     `gorm:"column:adj_close_price"`
	Volume          int64       `gorm:"column:volume"`
}

func (DailyPrice) TableName() string { return "daily_price" }

// SchemaVersion records which schema revision a database was created with.
type SchemaVersion struct {
	Version     string    `gorm:"column:version;primaryKey;size:16"`
	AppliedDate time.Time `gorm:"column:applied_date;not null"`
}

func (SchemaVersion) TableName() string { return "schema_version" }
