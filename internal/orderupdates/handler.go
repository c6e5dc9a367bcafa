package orderupdates

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-orderbook-cache/internal/domain"
	"github.com/feral-file/ff-orderbook-cache/internal/logger"
	"github.com/feral-file/ff-orderbook-cache/internal/store"
)

const DEFAULT_TOKEN_BATCH_SIZE = 1000

// Config holds configuration for the order updates handler
type Config struct {
	// TokenBatchSize caps how many tokens a single recompute statement touches
	TokenBatchSize int
}

// Handler recomputes the cached best-order pointers affected by a single order
type Handler struct {
	store          store.BestOrderStore
	tokenBatchSize int
}

// NewHandler creates a new order updates handler
func NewHandler(cfg Config, st store.BestOrderStore) *Handler {
	batchSize := cfg.TokenBatchSize
	if batchSize <= 0 {
		batchSize = DEFAULT_TOKEN_BATCH_SIZE
	}

	return &Handler{
		store:          st,
		tokenBatchSize: batchSize,
	}
}

// Handle recomputes the token set and token pointers for the order in the request.
// A request for an order that doesn't exist, or lacks a side or token set, is a no-op.
func (h *Handler) Handle(ctx context.Context, orderInfo domain.OrderInfo) error {
	fields := logger.OrderInfoFields(orderInfo)

	order, err := h.store.GetOrderSideAndTokenSet(ctx, orderInfo.ID)
	if err != nil {
		return fmt.Errorf("failed to get order %s: %w", orderInfo.ID, err)
	}
	if order == nil || order.Side == nil || order.TokenSetID == nil || *order.TokenSetID == "" {
		logger.DebugCtx(ctx, "Order missing or incomplete, nothing to recompute", fields...)
		return nil
	}

	side := *order.Side
	tokenSetID := *order.TokenSetID
	if !side.IsValid() {
		return fmt.Errorf("%w: %s", domain.ErrUnknownSide, side)
	}
	fields = append(fields, zap.String("side", string(side)), zap.String("token_set_id", tokenSetID))

	if side == domain.SideBuy && !domain.IsSingleTokenSet(tokenSetID) {
		change, err := h.store.RecomputeTokenSetTopBuy(ctx, tokenSetID)
		if err != nil {
			return err
		}
		if change != nil {
			logger.DebugCtx(ctx, "Token set top buy changed", append(fields,
				zap.Stringp("prev_order_id", change.PrevOrderID),
				zap.Stringp("order_id", change.OrderID),
			)...)
		}
	}

	tokens, err := h.store.GetTokenSetTokens(ctx, tokenSetID)
	if err != nil {
		return fmt.Errorf("failed to get tokens of token set %s: %w", tokenSetID, err)
	}

	changed, err := h.recomputeTokens(ctx, side, tokens)
	if err != nil {
		return err
	}

	logger.DebugCtx(ctx, "Recomputed token pointers", append(fields,
		zap.String("pointer", side.PointerColumn()),
		zap.Int("tokens", len(tokens)),
		zap.Int("changed", changed),
	)...)

	return nil
}

// recomputeTokens runs the side-specific recompute statement over the tokens in batches.
// A failed batch doesn't stop the remaining ones; every failure is returned joined.
func (h *Handler) recomputeTokens(ctx context.Context, side domain.Side, tokens []domain.TokenRef) (int, error) {
	var errs []error
	changed := 0

	for start := 0; start < len(tokens); start += h.tokenBatchSize {
		end := min(start+h.tokenBatchSize, len(tokens))
		batch := tokens[start:end]

		var changes []store.TokenPointerChange
		var err error
		switch side {
		case domain.SideSell:
			changes, err = h.store.RecomputeTokensFloorSell(ctx, batch)
		case domain.SideBuy:
			changes, err = h.store.RecomputeTokensTopBuy(ctx, batch)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("tokens %d-%d: %w", start, end-1, err))
			continue
		}

		changed += len(changes)
	}

	return changed, errors.Join(errs...)
}
