package protocol

// DepthItem is one aggregated price level as presented to clients.
type DepthItem struct {
	Price string `json:"price"`
	Size  int64  `json:"size"`
	Count int64  `json:"count"`
}

// GetDepthResponse represents the state of the order book depth.
type GetDepthResponse struct {
	UpdateID uint64       `json:"update_id"`
	Asks     []*DepthItem `json:"asks"`
	Bids     []*DepthItem `json:"bids"`
}

// GetStatsResponse contains statistics about the order book queues.
type GetStatsResponse struct {
	AskDepthCount int64 `json:"ask_depth_count"`
	AskOrderCount int64 `json:"ask_order_count"`
	BidDepthCount int64 `json:"bid_depth_count"`
	BidOrderCount int64 `json:"bid_order_count"`
}

// TradeReport is the client-facing rendering of a single execution.
type TradeReport struct {
	TradeID     uint64 `json:"trade_id"`
	BuyOrderID  uint64 `json:"buy_order_id"`
	SellOrderID uint64 `json:"sell_order_id"`
	Quantity    int64  `json:"quantity"`
	Price       string `json:"price"`
}

// PlaceOrderResponse is returned after an order has been processed.
type PlaceOrderResponse struct {
	OrderID uint64         `json:"order_id"`
	Trades  []*TradeReport `json:"trades"`
}

// CancelOrderResponse reports the outcome of a cancellation.
type CancelOrderResponse struct {
	OrderID      uint64       `json:"order_id"`
	Canceled     bool         `json:"canceled"`
	RejectReason RejectReason `json:"reject_reason,omitempty"`
}

// Side represents the order side (Buy/Sell).
type Side int8

const (
	SideBuy  Side = 1
	SideSell Side = 2
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "BUY"
	case SideSell:
		return "SELL"
	}
	return "UNKNOWN"
}

// Opposite returns the counter side.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// LogType represents the type of event log.
type LogType string

const (
	LogTypeOpen   LogType = "open"
	LogTypeMatch  LogType = "match"
	LogTypeCancel LogType = "cancel"
	LogTypeReject LogType = "reject"
)

// RejectReason represents the reason why a request was rejected.
type RejectReason string

const (
	RejectReasonNone           RejectReason = ""
	RejectReasonOrderNotFound  RejectReason = "order_not_found"
	RejectReasonInvalidPayload RejectReason = "invalid_payload"
)
