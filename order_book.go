package match

import (
	"fmt"

	"github.com/Sai-Devesh/Limit-Order-Book-Matching-Engine/structure"
	"github.com/shopspring/decimal"
)

const defaultArenaCapacity = 1024

// PriceLevel is a read-only view of one price level.
type PriceLevel struct {
	Price     decimal.Decimal
	TotalSize int64
	Count     int64
	front     Order
}

// Front returns the oldest order resting at this level.
func (l *PriceLevel) Front() Order {
	return l.front
}

// OrderBook owns both sides of the book and the id index.
// It holds no matching logic and is not safe for concurrent use.
type OrderBook struct {
	updateID uint64 // bumped on every state change, reported by Depth
	arena    *structure.OrderArena[Order]
	index    map[uint64]int32
	bidQueue *queue
	askQueue *queue
}

// NewOrderBook creates an empty order book.
func NewOrderBook() *OrderBook {
	arena := structure.NewOrderArena[Order](defaultArenaCapacity)
	return &OrderBook{
		arena:    arena,
		index:    make(map[uint64]int32),
		bidQueue: NewBuyerQueue(arena),
		askQueue: NewSellerQueue(arena),
	}
}

func (book *OrderBook) queueOf(side Side) *queue {
	if side == Buy {
		return book.bidQueue
	}
	return book.askQueue
}

// Insert appends the order to the tail of its price level.
// The id must not already rest in the book.
func (book *OrderBook) Insert(order *Order) {
	if _, ok := book.index[order.ID]; ok {
		panic(fmt.Errorf("%w: order %d already rests in the book", ErrInvalidParam, order.ID))
	}

	h := book.arena.Alloc(*order)
	book.index[order.ID] = h
	book.queueOf(order.Side).insertOrder(h)
	book.updateID++
}

// Cancel removes a resting order by id and returns its final state.
// Unknown ids yield ErrNotFound and leave the book unchanged.
func (book *OrderBook) Cancel(id uint64) (Order, error) {
	h, ok := book.index[id]
	if !ok {
		return Order{}, ErrNotFound
	}

	order := *book.arena.MustGet(h)
	book.queueOf(order.Side).removeOrder(h)
	delete(book.index, id)
	book.arena.Free(h)
	book.updateID++

	return order, nil
}

// Order returns a copy of the resting order with the given id.
func (book *OrderBook) Order(id uint64) (Order, bool) {
	h, ok := book.index[id]
	if !ok {
		return Order{}, false
	}
	return *book.arena.MustGet(h), true
}

// HasBids reports whether the bid side holds any level.
func (book *OrderBook) HasBids() bool {
	return book.hasOrders(Buy)
}

// HasAsks reports whether the ask side holds any level.
func (book *OrderBook) HasAsks() bool {
	return book.hasOrders(Sell)
}

// BestBid returns the highest bid level.
// It panics with ErrEmptySide when there are no bids; check HasBids first.
func (book *OrderBook) BestBid() *PriceLevel {
	return book.best(Buy)
}

// BestAsk returns the lowest ask level.
// It panics with ErrEmptySide when there are no asks; check HasAsks first.
func (book *OrderBook) BestAsk() *PriceLevel {
	return book.best(Sell)
}

// RemoveBestBid evicts the highest bid level together with any orders still queued there.
// It panics with ErrEmptySide when there are no bids; check HasBids first.
func (book *OrderBook) RemoveBestBid() {
	book.mustHaveOrders(Buy)
	book.removeBest(Buy)
}

// RemoveBestAsk evicts the lowest ask level together with any orders still queued there.
// It panics with ErrEmptySide when there are no asks; check HasAsks first.
func (book *OrderBook) RemoveBestAsk() {
	book.mustHaveOrders(Sell)
	book.removeBest(Sell)
}

func (book *OrderBook) mustHaveOrders(side Side) {
	if !book.hasOrders(side) {
		panic(fmt.Errorf("%w: no %s levels to remove", ErrEmptySide, side))
	}
}

// Snapshot returns the aggregate size of each level on both sides, best-to-worst.
// It is meant for display only.
func (book *OrderBook) Snapshot() BookSnapshot {
	return BookSnapshot{
		Bids: book.bidQueue.levels(),
		Asks: book.askQueue.levels(),
	}
}

// Orders returns every resting order per side in matching priority.
func (book *OrderBook) Orders() (bids []Order, asks []Order) {
	return book.bidQueue.orders(), book.askQueue.orders()
}

// Depth returns the order book depth up to limit levels per side.
func (book *OrderBook) Depth(limit uint32) (*Depth, error) {
	if limit == 0 {
		return nil, ErrInvalidParam
	}

	return &Depth{
		UpdateID: book.updateID,
		Asks:     book.askQueue.depth(limit),
		Bids:     book.bidQueue.depth(limit),
	}, nil
}

// Stats returns level and order counts for both sides.
func (book *OrderBook) Stats() *BookStats {
	return &BookStats{
		AskDepthCount: book.askQueue.depthCount(),
		AskOrderCount: book.askQueue.orderCount(),
		BidDepthCount: book.bidQueue.depthCount(),
		BidOrderCount: book.bidQueue.orderCount(),
	}
}

func (book *OrderBook) hasOrders(side Side) bool {
	return book.queueOf(side).depthCount() > 0
}

func (book *OrderBook) best(side Side) *PriceLevel {
	q := book.queueOf(side)
	unit := q.frontUnit()
	if unit == nil {
		panic(fmt.Errorf("%w: no %s levels", ErrEmptySide, side))
	}

	return &PriceLevel{
		Price:     unit.price,
		TotalSize: unit.totalSize,
		Count:     unit.orders.Len,
		front:     *book.arena.MustGet(unit.orders.Head),
	}
}

// bestPrice is the allocation-free form of best used by the matching loop.
func (book *OrderBook) bestPrice(side Side) (decimal.Decimal, bool) {
	unit := book.queueOf(side).frontUnit()
	if unit == nil {
		return decimal.Zero, false
	}
	return unit.price, true
}

func (book *OrderBook) removeBest(side Side) {
	for _, h := range book.queueOf(side).removeFrontLevel() {
		order := book.arena.MustGet(h)
		delete(book.index, order.ID)
		book.arena.Free(h)
	}
	book.updateID++
}

// fillFront executes up to qty against the oldest order at the best level of side.
// A maker reduced to zero leaves the queue and the index. The level itself is
// kept so the caller can evict it with removeBest once drained.
// It returns the maker after the fill, the filled quantity and whether the level is now empty.
func (book *OrderBook) fillFront(side Side, qty int64) (maker Order, filled int64, drained bool) {
	q := book.queueOf(side)
	unit := q.frontUnit()
	if unit == nil || unit.orders.Empty() {
		panic(fmt.Errorf("%w: no %s orders to fill", ErrEmptySide, side))
	}

	h := unit.orders.Head
	order := book.arena.MustGet(h)

	filled = min(qty, order.Size)
	order.Size -= filled
	unit.totalSize -= filled
	maker = *order

	if order.Size == 0 {
		q.unlinkOrder(h)
		delete(book.index, maker.ID)
		book.arena.Free(h)
	}
	book.updateID++

	return maker, filled, unit.orders.Empty()
}
