package schema

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/feral-file/ff-orderbook-cache/internal/domain"
)

// Order represents the orders table - written by the order ingestion pipeline, read-only here
type Order struct {
	// ID is the deterministic order hash
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Kind is the exchange protocol the order belongs to (e.g. seaport, sweep-and-flip)
	Kind string `gorm:"column:kind;not null;type:text"`
	// Side is buy for bids and sell for listings (nil until the order is fully materialized)
	Side *domain.Side `gorm:"column:side;type:text"`
	// TokenSetID references the token set the order targets
	TokenSetID *string `gorm:"column:token_set_id;type:text;index:idx_orders_token_set_side_value,priority:1"`
	// Value is the comparable order price in the native currency (wei)
	Value decimal.Decimal `gorm:"column:value;not null;type:numeric(78,0)"`
	// Maker is the address that created the order
	Maker string `gorm:"column:maker;not null;type:text"`
	// ValidBetween is the order validity window
	ValidBetween *string `gorm:"column:valid_between;type:tstzrange;->:false;<-:false"`
	// FillabilityStatus tracks whether the maker can currently fill the order
	FillabilityStatus domain.FillabilityStatus `gorm:"column:fillability_status;not null;type:text"`
	// ApprovalStatus tracks whether the maker approved the exchange to move the assets
	ApprovalStatus domain.ApprovalStatus `gorm:"column:approval_status;not null;type:text"`
	// CreatedAt is the timestamp when the order was stored
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when the order was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
