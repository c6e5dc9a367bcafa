package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Side represents the side of an order
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// IsValid checks if the side is buy or sell
func (s Side) IsValid() bool {
	return s == SideBuy || s == SideSell
}

// PointerColumn returns the token cache column prefix maintained for this side
func (s Side) PointerColumn() string {
	if s == SideSell {
		return "floor_sell"
	}
	return "top_buy"
}

// FillabilityStatus represents whether the maker can currently fill the order
type FillabilityStatus string

const (
	FillabilityStatusFillable  FillabilityStatus = "fillable"
	FillabilityStatusNoBalance FillabilityStatus = "no-balance"
	FillabilityStatusCancelled FillabilityStatus = "cancelled"
	FillabilityStatusFilled    FillabilityStatus = "filled"
	FillabilityStatusExpired   FillabilityStatus = "expired"
)

// ApprovalStatus represents whether the maker granted the approval the order needs
type ApprovalStatus string

const (
	ApprovalStatusApproved   ApprovalStatus = "approved"
	ApprovalStatusNoApproval ApprovalStatus = "no-approval"
	ApprovalStatusDisabled   ApprovalStatus = "disabled"
)

// TriggerKind represents what caused an order update request
type TriggerKind string

const (
	TriggerKindNewOrder       TriggerKind = "new-order"
	TriggerKindCancel         TriggerKind = "cancel"
	TriggerKindSale           TriggerKind = "sale"
	TriggerKindBalanceChange  TriggerKind = "balance-change"
	TriggerKindApprovalChange TriggerKind = "approval-change"
	TriggerKindExpiry         TriggerKind = "expiry"
	TriggerKindReprice        TriggerKind = "reprice"
	TriggerKindRevalidation   TriggerKind = "revalidation"
)

// Trigger carries optional on-chain context about the mutation behind an order update request
type Trigger struct {
	Kind        TriggerKind `json:"kind"`
	TxHash      string      `json:"txHash,omitempty"`
	TxTimestamp int64       `json:"txTimestamp,omitempty"`
	LogIndex    int         `json:"logIndex,omitempty"`
	BatchIndex  int         `json:"batchIndex,omitempty"`
}

// OrderInfo is a request to recompute the cached best orders affected by an order.
// Context is a deterministic description of what triggered the request, so repeated
// triggers for the same (Context, ID) pair collapse into a single job.
type OrderInfo struct {
	Context string   `json:"context"`
	ID      string   `json:"id"`
	Trigger *Trigger `json:"trigger,omitempty"`
}

// JobID returns the deterministic queue job id used for deduplication
func (o OrderInfo) JobID() string {
	return o.Context + "-" + o.ID
}

// IsEmpty reports whether the request points at no order at all
func (o OrderInfo) IsEmpty() bool {
	return IsZeroOrderID(o.ID)
}

// Validate checks the request carries both a context and a non-zero order id
func (o OrderInfo) Validate() error {
	if strings.TrimSpace(o.Context) == "" {
		return fmt.Errorf("%w: missing context", ErrInvalidOrderInfo)
	}
	if o.IsEmpty() {
		return fmt.Errorf("%w: missing order id", ErrInvalidOrderInfo)
	}
	return nil
}

// IsZeroOrderID reports whether the id is empty or the zero hash
func IsZeroOrderID(id string) bool {
	id = strings.TrimSpace(id)
	return id == "" || strings.EqualFold(id, ZERO_ORDER_ID)
}

// NormalizeOrderID lowercases hex order hashes; other ids are returned untouched
func NormalizeOrderID(id string) string {
	id = strings.TrimSpace(id)
	if isHexHash(id) {
		return common.HexToHash(id).Hex()
	}
	return id
}

func isHexHash(s string) bool {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return false
	}
	s = s[2:]
	if len(s) != 2*common.HashLength {
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

// IsSingleTokenSet reports whether the token set targets exactly one token
func IsSingleTokenSet(tokenSetID string) bool {
	return strings.HasPrefix(tokenSetID, SINGLE_TOKEN_SET_PREFIX)
}

// TokenRef identifies a single token by contract and token id
type TokenRef struct {
	Contract string `json:"contract" gorm:"column:contract"`
	TokenID  string `json:"tokenId" gorm:"column:token_id"`
}

// String returns the token reference in contract:tokenId format
func (t TokenRef) String() string {
	return t.Contract + ":" + t.TokenID
}
