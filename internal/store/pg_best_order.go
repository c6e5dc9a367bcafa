package store

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-orderbook-cache/internal/domain"
)

// Every recompute statement reads the current best order and rewrites the cached pointer in one
// UPDATE, and only touches rows whose stored order id differs from the resolved one. Equal values
// are broken by the lowest order id.

const recomputeTokenSetTopBuyQuery = `
	WITH "x" AS (
		SELECT
			"ts"."id" AS "token_set_id",
			"ts"."top_buy_id" AS "prev_order_id",
			"y"."order_id",
			"y"."value",
			"y"."maker",
			"y"."valid_between"
		FROM "token_sets" "ts"
		LEFT JOIN LATERAL (
			SELECT
				"o"."id" AS "order_id",
				"o"."value",
				"o"."maker",
				"o"."valid_between"
			FROM "orders" "o"
			WHERE "o"."token_set_id" = "ts"."id"
				AND "o"."side" = @side
				AND "o"."fillability_status" = @fillable
				AND "o"."approval_status" = @approved
			ORDER BY "o"."value" DESC, "o"."id" ASC
			LIMIT 1
		) "y" ON TRUE
		WHERE "ts"."id" = @tokenSetID
	)
	UPDATE "token_sets" AS "ts" SET
		"top_buy_id" = "x"."order_id",
		"top_buy_value" = "x"."value",
		"top_buy_maker" = "x"."maker",
		"top_buy_valid_between" = "x"."valid_between"
	FROM "x"
	WHERE "ts"."id" = "x"."token_set_id"
		AND "ts"."top_buy_id" IS DISTINCT FROM "x"."order_id"
	RETURNING
		"ts"."id" AS "token_set_id",
		"x"."prev_order_id",
		"x"."order_id",
		"x"."value"
`

const recomputeTokensFloorSellQuery = `
	WITH "x" AS (
		SELECT
			"t"."contract",
			"t"."token_id",
			"t"."floor_sell_id" AS "prev_order_id"
		FROM "tokens" "t"
		WHERE ("t"."contract", "t"."token_id") IN @tokens
	), "z" AS (
		SELECT
			"x"."contract",
			"x"."token_id",
			"x"."prev_order_id",
			"y"."order_id",
			"y"."value",
			"y"."maker",
			"y"."valid_between"
		FROM "x"
		LEFT JOIN LATERAL (
			SELECT
				"o"."id" AS "order_id",
				"o"."value",
				"o"."maker",
				"o"."valid_between"
			FROM "orders" "o"
			JOIN "token_sets_tokens" "tst"
				ON "o"."token_set_id" = "tst"."token_set_id"
			WHERE "tst"."contract" = "x"."contract"
				AND "tst"."token_id" = "x"."token_id"
				AND "o"."side" = @side
				AND "o"."fillability_status" = @fillable
				AND "o"."approval_status" = @approved
			ORDER BY "o"."value" ASC, "o"."id" ASC
			LIMIT 1
		) "y" ON TRUE
	)
	UPDATE "tokens" AS "t" SET
		"floor_sell_id" = "z"."order_id",
		"floor_sell_value" = "z"."value",
		"floor_sell_maker" = "z"."maker",
		"floor_sell_valid_between" = "z"."valid_between",
		"updated_at" = now()
	FROM "z"
	WHERE "t"."contract" = "z"."contract"
		AND "t"."token_id" = "z"."token_id"
		AND "t"."floor_sell_id" IS DISTINCT FROM "z"."order_id"
	RETURNING
		"t"."contract",
		"t"."token_id"::text AS "token_id",
		"z"."prev_order_id",
		"z"."order_id",
		"z"."value"
`

const recomputeTokensTopBuyQuery = `
	WITH "x" AS (
		SELECT
			"t"."contract",
			"t"."token_id",
			"t"."top_buy_id" AS "prev_order_id"
		FROM "tokens" "t"
		WHERE ("t"."contract", "t"."token_id") IN @tokens
	), "z" AS (
		SELECT
			"x"."contract",
			"x"."token_id",
			"x"."prev_order_id",
			"y"."order_id",
			"y"."value",
			"y"."maker",
			"y"."valid_between"
		FROM "x"
		LEFT JOIN LATERAL (
			SELECT
				"o"."id" AS "order_id",
				"o"."value",
				"o"."maker",
				"o"."valid_between"
			FROM "orders" "o"
			JOIN "token_sets_tokens" "tst"
				ON "o"."token_set_id" = "tst"."token_set_id"
			WHERE "tst"."contract" = "x"."contract"
				AND "tst"."token_id" = "x"."token_id"
				AND "o"."side" = @side
				AND "o"."fillability_status" = @fillable
				AND "o"."approval_status" = @approved
				AND EXISTS (
					SELECT FROM "nft_balances" "nb"
					WHERE "nb"."contract" = "x"."contract"
						AND "nb"."token_id" = "x"."token_id"
						AND "nb"."amount" > 0
						AND "nb"."owner" != "o"."maker"
				)
			ORDER BY "o"."value" DESC, "o"."id" ASC
			LIMIT 1
		) "y" ON TRUE
	)
	UPDATE "tokens" AS "t" SET
		"top_buy_id" = "z"."order_id",
		"top_buy_value" = "z"."value",
		"top_buy_maker" = "z"."maker",
		"top_buy_valid_between" = "z"."valid_between",
		"updated_at" = now()
	FROM "z"
	WHERE "t"."contract" = "z"."contract"
		AND "t"."token_id" = "z"."token_id"
		AND "t"."top_buy_id" IS DISTINCT FROM "z"."order_id"
	RETURNING
		"t"."contract",
		"t"."token_id"::text AS "token_id",
		"z"."prev_order_id",
		"z"."order_id",
		"z"."value"
`

// RecomputeTokenSetTopBuy recomputes the top buy pointer of a token set
func (s *pgStore) RecomputeTokenSetTopBuy(ctx context.Context, tokenSetID string) (*TokenSetPointerChange, error) {
	var changes []TokenSetPointerChange
	err := s.db.WithContext(ctx).Raw(recomputeTokenSetTopBuyQuery, map[string]interface{}{
		"tokenSetID": tokenSetID,
		"side":       string(domain.SideBuy),
		"fillable":   string(domain.FillabilityStatusFillable),
		"approved":   string(domain.ApprovalStatusApproved),
	}).Scan(&changes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to recompute top buy of token set %s: %w", tokenSetID, err)
	}

	if len(changes) == 0 {
		return nil, nil
	}

	return &changes[0], nil
}

// RecomputeTokensFloorSell recomputes the floor sell pointer of the given tokens
func (s *pgStore) RecomputeTokensFloorSell(ctx context.Context, tokens []domain.TokenRef) ([]TokenPointerChange, error) {
	changes, err := s.recomputeTokens(ctx, recomputeTokensFloorSellQuery, domain.SideSell, tokens)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute floor sell of %d tokens: %w", len(tokens), err)
	}
	return changes, nil
}

// RecomputeTokensTopBuy recomputes the top buy pointer of the given tokens
func (s *pgStore) RecomputeTokensTopBuy(ctx context.Context, tokens []domain.TokenRef) ([]TokenPointerChange, error) {
	changes, err := s.recomputeTokens(ctx, recomputeTokensTopBuyQuery, domain.SideBuy, tokens)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute top buy of %d tokens: %w", len(tokens), err)
	}
	return changes, nil
}

func (s *pgStore) recomputeTokens(ctx context.Context, query string, side domain.Side, tokens []domain.TokenRef) ([]TokenPointerChange, error) {
	if len(tokens) == 0 {
		return []TokenPointerChange{}, nil
	}

	// Expands to (("contract", "token_id"), ...) for the row-value IN list
	pairs := make([][]interface{}, 0, len(tokens))
	for _, token := range tokens {
		pairs = append(pairs, []interface{}{token.Contract, token.TokenID})
	}

	var changes []TokenPointerChange
	err := s.db.WithContext(ctx).Raw(query, map[string]interface{}{
		"tokens":   pairs,
		"side":     string(side),
		"fillable": string(domain.FillabilityStatusFillable),
		"approved": string(domain.ApprovalStatusApproved),
	}).Scan(&changes).Error
	if err != nil {
		return nil, err
	}

	return changes, nil
}
