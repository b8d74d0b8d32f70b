package match

import "github.com/shopspring/decimal"

// LevelSnapshot is the aggregate of one price level.
type LevelSnapshot struct {
	Price decimal.Decimal `json:"price"`
	Size  int64           `json:"size"`  // Sum of remaining sizes at this price
	Count int64           `json:"count"` // Number of resting orders
}

// BookSnapshot contains the per-level view of a single OrderBook.
// It is produced for display and is never consulted by matching.
type BookSnapshot struct {
	Bids []LevelSnapshot `json:"bids"` // Ordered list of bids (best price first)
	Asks []LevelSnapshot `json:"asks"` // Ordered list of asks (best price first)
}
