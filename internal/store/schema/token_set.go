package schema

import (
	"github.com/shopspring/decimal"
)

// TokenSet represents the token_sets table - a named group of tokens a bid can target
type TokenSet struct {
	// ID is the token set identifier ("token:<contract>:<tokenId>" for single tokens)
	ID string `gorm:"column:id;primaryKey;type:text"`
	// TopBuyID references the best fillable bid on the whole set
	TopBuyID *string `gorm:"column:top_buy_id;type:text"`
	// TopBuyValue is the value of the best bid
	TopBuyValue decimal.NullDecimal `gorm:"column:top_buy_value;type:numeric(78,0)"`
	// TopBuyMaker is the maker of the best bid
	TopBuyMaker *string `gorm:"column:top_buy_maker;type:text"`
	// TopBuyValidBetween is the validity window of the best bid
	TopBuyValidBetween *string `gorm:"column:top_buy_valid_between;type:tstzrange;->:false;<-:false"`
}

// TableName specifies the table name for the TokenSet model
func (TokenSet) TableName() string {
	return "token_sets"
}

// TokenSetToken represents the token_sets_tokens table - token set membership
type TokenSetToken struct {
	TokenSetID string `gorm:"column:token_set_id;primaryKey;type:text"`
	Contract   string `gorm:"column:contract;primaryKey;type:text;index:idx_token_sets_tokens_contract_token_id,priority:1"`
	TokenID    string `gorm:"column:token_id;primaryKey;type:numeric(78,0);index:idx_token_sets_tokens_contract_token_id,priority:2"`
}

// TableName specifies the table name for the TokenSetToken model
func (TokenSetToken) TableName() string {
	return "token_sets_tokens"
}
