package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/feral-file/ff-orderbook-cache/internal/domain"
	"github.com/feral-file/ff-orderbook-cache/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// GetOrderSideAndTokenSet returns the side and token set of an order, or nil if the order doesn't exist
func (s *pgStore) GetOrderSideAndTokenSet(ctx context.Context, orderID string) (*OrderSideAndTokenSet, error) {
	var result OrderSideAndTokenSet
	err := s.db.WithContext(ctx).
		Model(&schema.Order{}).
		Select("side", "token_set_id").
		Where("id = ?", orderID).
		Take(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}

	return &result, nil
}

// GetTokenSetTokens returns the tokens belonging to a token set ordered by contract and token id
func (s *pgStore) GetTokenSetTokens(ctx context.Context, tokenSetID string) ([]domain.TokenRef, error) {
	var tokens []domain.TokenRef
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			"tst"."contract",
			"tst"."token_id"::text AS "token_id"
		FROM "token_sets_tokens" "tst"
		WHERE "tst"."token_set_id" = ?
		ORDER BY "tst"."contract" ASC, "tst"."token_id" ASC
	`, tokenSetID).Scan(&tokens).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get tokens of token set %s: %w", tokenSetID, err)
	}

	return tokens, nil
}
