package match

import (
	"github.com/Sai-Devesh/Limit-Order-Book-Matching-Engine/protocol"
	"github.com/shopspring/decimal"
)

const (
	// EngineVersion is the current version of the matching engine
	EngineVersion = "v1.0.0"
)

type Side = protocol.Side

const (
	Buy  Side = protocol.SideBuy
	Sell Side = protocol.SideSell
)

// Order represents the state of an order in the order book.
// ID is assigned by the engine; any caller-supplied value is overwritten.
type Order struct {
	ID        uint64          `json:"id"`
	Side      Side            `json:"side"`
	Price     decimal.Decimal `json:"price"`
	Size      int64           `json:"size"`      // Remaining size
	Timestamp int64           `json:"timestamp"` // Unix nano, creation time
}

// Trade is a record of one match between a taker and a resting maker.
type Trade struct {
	ID          uint64          `json:"id"`
	BuyOrderID  uint64          `json:"buy_order_id"`
	SellOrderID uint64          `json:"sell_order_id"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"` // Maker price
	TakerSide   Side            `json:"taker_side"`
}

// Amount returns Price * Quantity.
func (t Trade) Amount() decimal.Decimal {
	return t.Price.Mul(decimal.NewFromInt(t.Quantity))
}

type DepthItem struct {
	ID    uint32
	Price decimal.Decimal
	Size  int64
	Count int64
}

type Depth struct {
	UpdateID uint64       `json:"update_id"`
	Asks     []*DepthItem `json:"asks"`
	Bids     []*DepthItem `json:"bids"`
}

// BookStats contains statistics about the order book queues
type BookStats struct {
	AskDepthCount int64
	AskOrderCount int64
	BidDepthCount int64
	BidOrderCount int64
}
