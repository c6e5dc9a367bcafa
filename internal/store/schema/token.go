package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// Token represents the tokens table - one row per token with its cached best orders
type Token struct {
	// Contract is the lowercase contract address
	Contract string `gorm:"column:contract;primaryKey;type:text"`
	// TokenID is the token id within the contract (string to support very large numbers)
	TokenID string `gorm:"column:token_id;primaryKey;type:numeric(78,0)"`

	// FloorSellID references the cheapest fillable listing on this token
	FloorSellID           *string             `gorm:"column:floor_sell_id;type:text"`
	FloorSellValue        decimal.NullDecimal `gorm:"column:floor_sell_value;type:numeric(78,0)"`
	FloorSellMaker        *string             `gorm:"column:floor_sell_maker;type:text"`
	FloorSellValidBetween *string             `gorm:"column:floor_sell_valid_between;type:tstzrange;->:false;<-:false"`

	// TopBuyID references the best fillable bid on this token from someone who doesn't hold all of its supply
	TopBuyID           *string             `gorm:"column:top_buy_id;type:text"`
	TopBuyValue        decimal.NullDecimal `gorm:"column:top_buy_value;type:numeric(78,0)"`
	TopBuyMaker        *string             `gorm:"column:top_buy_maker;type:text"`
	TopBuyValidBetween *string             `gorm:"column:top_buy_valid_between;type:tstzrange;->:false;<-:false"`

	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Token model
func (Token) TableName() string {
	return "tokens"
}
