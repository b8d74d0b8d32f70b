package match

import (
	"github.com/Sai-Devesh/Limit-Order-Book-Matching-Engine/structure"
	"github.com/huandu/skiplist"
	"github.com/shopspring/decimal"
)

type priceUnit struct {
	price     decimal.Decimal
	totalSize int64
	orders    structure.HandleList
}

// queue is one side of the book: price levels ordered by matching priority,
// each holding a FIFO of arena handles.
type queue struct {
	side        Side
	arena       *structure.OrderArena[Order]
	totalOrders int64
	depths      int64
	depthList   *skiplist.SkipList
	priceList   map[string]*skiplist.Element
}

// priceKey returns a canonical key so that 99.5 and 99.50 share one level.
func priceKey(price decimal.Decimal) string {
	return price.String()
}

// NewBuyerQueue creates a new queue for buy orders (bids).
// The orders are sorted by price in descending order (highest price first).
func NewBuyerQueue(arena *structure.OrderArena[Order]) *queue {
	return &queue{
		side:  Buy,
		arena: arena,
		depthList: skiplist.New(skiplist.GreaterThanFunc(func(lhs, rhs any) int {
			d1, _ := lhs.(decimal.Decimal)
			d2, _ := rhs.(decimal.Decimal)

			if d1.LessThan(d2) {
				return 1
			} else if d1.GreaterThan(d2) {
				return -1
			}

			return 0
		})),
		priceList: make(map[string]*skiplist.Element),
	}
}

// NewSellerQueue creates a new queue for sell orders (asks).
// The orders are sorted by price in ascending order (lowest price first).
func NewSellerQueue(arena *structure.OrderArena[Order]) *queue {
	return &queue{
		side:  Sell,
		arena: arena,
		depthList: skiplist.New(skiplist.GreaterThanFunc(func(lhs, rhs any) int {
			d1, _ := lhs.(decimal.Decimal)
			d2, _ := rhs.(decimal.Decimal)

			if d1.GreaterThan(d2) {
				return 1
			} else if d1.LessThan(d2) {
				return -1
			}

			return 0
		})),
		priceList: make(map[string]*skiplist.Element),
	}
}

// insertOrder appends the order at handle h to the tail of its price level,
// creating the level if absent.
func (q *queue) insertOrder(h int32) {
	order := q.arena.MustGet(h)
	key := priceKey(order.Price)

	var unit *priceUnit
	if el, ok := q.priceList[key]; ok {
		unit, _ = el.Value.(*priceUnit)
	} else {
		unit = &priceUnit{
			price:  order.Price,
			orders: structure.NewHandleList(),
		}
		q.priceList[key] = q.depthList.Set(order.Price, unit)
		q.depths++
	}

	q.arena.PushBack(&unit.orders, h)
	unit.totalSize += order.Size
	q.totalOrders++
}

// unlinkOrder detaches h from its level without dropping the level.
func (q *queue) unlinkOrder(h int32) *priceUnit {
	order := q.arena.MustGet(h)

	el, ok := q.priceList[priceKey(order.Price)]
	if !ok {
		return nil
	}
	unit, _ := el.Value.(*priceUnit)

	q.arena.Unlink(&unit.orders, h)
	unit.totalSize -= order.Size
	q.totalOrders--

	return unit
}

// removeOrder detaches h and drops its level once the level is empty.
func (q *queue) removeOrder(h int32) {
	unit := q.unlinkOrder(h)
	if unit != nil && unit.orders.Empty() {
		q.dropLevel(unit.price)
	}
}

func (q *queue) dropLevel(price decimal.Decimal) {
	key := priceKey(price)
	el, ok := q.priceList[key]
	if !ok {
		return
	}

	q.depthList.RemoveElement(el)
	delete(q.priceList, key)
	q.depths--
}

// frontUnit returns the best price level, or nil when the side is empty.
func (q *queue) frontUnit() *priceUnit {
	el := q.depthList.Front()
	if el == nil {
		return nil
	}

	unit, _ := el.Value.(*priceUnit)
	return unit
}

// removeFrontLevel evicts the best level and returns the handles still queued on it.
func (q *queue) removeFrontLevel() []int32 {
	unit := q.frontUnit()
	if unit == nil {
		return nil
	}

	remaining := make([]int32, 0, unit.orders.Len)
	for h := unit.orders.Head; h != structure.NullIndex; h = q.arena.Next(h) {
		remaining = append(remaining, h)
	}
	for _, h := range remaining {
		q.arena.Unlink(&unit.orders, h)
		q.totalOrders--
	}
	unit.totalSize = 0

	q.dropLevel(unit.price)
	return remaining
}

// orderCount returns the total number of orders in the queue.
func (q *queue) orderCount() int64 {
	return q.totalOrders
}

// depthCount returns the number of price levels in the queue.
func (q *queue) depthCount() int64 {
	return q.depths
}

// levels returns every level best-to-worst with its aggregate size.
func (q *queue) levels() []LevelSnapshot {
	result := make([]LevelSnapshot, 0, q.depths)

	for el := q.depthList.Front(); el != nil; el = el.Next() {
		unit, _ := el.Value.(*priceUnit)
		result = append(result, LevelSnapshot{
			Price: unit.price,
			Size:  unit.totalSize,
			Count: unit.orders.Len,
		})
	}

	return result
}

// orders returns the resting orders in priority order (level by level, FIFO within a level).
func (q *queue) orders() []Order {
	result := make([]Order, 0, q.totalOrders)

	for el := q.depthList.Front(); el != nil; el = el.Next() {
		unit, _ := el.Value.(*priceUnit)
		for h := unit.orders.Head; h != structure.NullIndex; h = q.arena.Next(h) {
			result = append(result, *q.arena.MustGet(h))
		}
	}

	return result
}

// depth returns the order book depth up to the specified limit.
func (q *queue) depth(limit uint32) []*DepthItem {
	result := make([]*DepthItem, 0, limit)

	el := q.depthList.Front()

	var i uint32 = 0
	for i < limit && el != nil {
		unit, _ := el.Value.(*priceUnit)
		result = append(result, &DepthItem{
			ID:    i,
			Price: unit.price,
			Size:  unit.totalSize,
			Count: unit.orders.Len,
		})

		el = el.Next()
		i++
	}

	return result
}
