package domain

import "github.com/ethereum/go-ethereum/common"

const (
	// SINGLE_TOKEN_SET_PREFIX marks token sets that contain exactly one token (e.g. "token:0xabc...:1")
	SINGLE_TOKEN_SET_PREFIX = "token:"

	// ORDER_UPDATES_QUEUE_NAME is the name of the order updates queue
	ORDER_UPDATES_QUEUE_NAME = "order-updates-by-id"
)

// ZERO_ORDER_ID is the all-zero order hash; producers emit it for empty order slots
var ZERO_ORDER_ID = common.Hash{}.Hex()
