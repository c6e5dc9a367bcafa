package logger

import (
	"go.uber.org/zap"

	"github.com/feral-file/ff-orderbook-cache/internal/domain"
)

// OrderInfoFields returns the fields identifying an order update request
func OrderInfoFields(orderInfo domain.OrderInfo) []zap.Field {
	fields := []zap.Field{
		zap.String("context", orderInfo.Context),
		zap.String("order_id", orderInfo.ID),
	}

	if t := orderInfo.Trigger; t != nil {
		fields = append(fields, zap.String("trigger_kind", string(t.Kind)))
		if t.TxHash != "" {
			fields = append(fields,
				zap.String("tx_hash", t.TxHash),
				zap.Int64("tx_timestamp", t.TxTimestamp),
				zap.Int("log_index", t.LogIndex),
				zap.Int("batch_index", t.BatchIndex),
			)
		}
	}

	return fields
}
