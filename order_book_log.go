package match

import (
	"time"

	"github.com/Sai-Devesh/Limit-Order-Book-Matching-Engine/protocol"
	"github.com/shopspring/decimal"
)

type LogType = protocol.LogType

const (
	LogTypeOpen   LogType = protocol.LogTypeOpen
	LogTypeMatch  LogType = protocol.LogTypeMatch
	LogTypeCancel LogType = protocol.LogTypeCancel
	LogTypeReject LogType = protocol.LogTypeReject
)

type RejectReason = protocol.RejectReason

const (
	RejectReasonNone          RejectReason = protocol.RejectReasonNone
	RejectReasonOrderNotFound RejectReason = protocol.RejectReasonOrderNotFound
)

// BookLog represents an event in the order book.
// SequenceID increases by one for every event an engine emits.
// Use LogType to determine if the event affects order book state:
// - Open, Match, Cancel: affect order book state
// - Reject: does not affect order book state
type BookLog struct {
	SequenceID   uint64          `json:"seq_id"`
	TradeID      uint64          `json:"trade_id,omitempty"` // Only set for Match events
	Type         LogType         `json:"type"`
	Side         Side            `json:"side"` // Taker side for Match events
	Price        decimal.Decimal `json:"price"`
	Size         int64           `json:"size"`
	OrderID      uint64          `json:"order_id"`
	MakerOrderID uint64          `json:"maker_order_id,omitempty"`
	RejectReason RejectReason    `json:"reject_reason,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

func NewOpenLog(seqID uint64, order *Order, now time.Time) *BookLog {
	return &BookLog{
		SequenceID: seqID,
		Type:       LogTypeOpen,
		Side:       order.Side,
		Price:      order.Price,
		Size:       order.Size,
		OrderID:    order.ID,
		CreatedAt:  now,
	}
}

func NewMatchLog(seqID uint64, taker *Order, trade *Trade, makerID uint64, now time.Time) *BookLog {
	return &BookLog{
		SequenceID:   seqID,
		TradeID:      trade.ID,
		Type:         LogTypeMatch,
		Side:         taker.Side,
		Price:        trade.Price,
		Size:         trade.Quantity,
		OrderID:      taker.ID,
		MakerOrderID: makerID,
		CreatedAt:    now,
	}
}

func NewCancelLog(seqID uint64, order *Order, now time.Time) *BookLog {
	return &BookLog{
		SequenceID: seqID,
		Type:       LogTypeCancel,
		Side:       order.Side,
		Price:      order.Price,
		Size:       order.Size,
		OrderID:    order.ID,
		CreatedAt:  now,
	}
}

func NewRejectLog(seqID uint64, orderID uint64, reason RejectReason, now time.Time) *BookLog {
	return &BookLog{
		SequenceID:   seqID,
		Type:         LogTypeReject,
		OrderID:      orderID,
		RejectReason: reason,
		CreatedAt:    now,
	}
}
