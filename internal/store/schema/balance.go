package schema

import (
	"github.com/shopspring/decimal"
)

// NFTBalance represents the nft_balances table - how many editions of a token an owner holds
type NFTBalance struct {
	// Contract is the lowercase contract address
	Contract string `gorm:"column:contract;primaryKey;type:text"`
	// TokenID is the token id within the contract
	TokenID string `gorm:"column:token_id;primaryKey;type:numeric(78,0)"`
	// Owner is the holder's address
	Owner string `gorm:"column:owner;primaryKey;type:text"`
	// Amount is the number of editions held (may drop to zero after transfers)
	Amount decimal.Decimal `gorm:"column:amount;not null;type:numeric(78,0)"`
}

// TableName specifies the table name for the NFTBalance model
func (NFTBalance) TableName() string {
	return "nft_balances"
}
