package match

import (
	"testing"

	"github.com/Sai-Devesh/Limit-Order-Book-Matching-Engine/structure"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func addToQueue(q *queue, id uint64, price string, size int64) int32 {
	h := q.arena.Alloc(Order{
		ID:    id,
		Side:  q.side,
		Price: decimal.RequireFromString(price),
		Size:  size,
	})
	q.insertOrder(h)
	return h
}

func frontIDs(q *queue) []uint64 {
	ids := make([]uint64, 0)
	for _, o := range q.orders() {
		ids = append(ids, o.ID)
	}
	return ids
}

func TestBuyerQueue(t *testing.T) {
	q := NewBuyerQueue(structure.NewOrderArena[Order](4))

	addToQueue(q, 101, "10", 1)
	addToQueue(q, 201, "20", 10)
	addToQueue(q, 301, "30", 10)
	addToQueue(q, 202, "20", 100)

	assert.Equal(t, int64(4), q.orderCount())
	assert.Equal(t, int64(3), q.depthCount())

	// highest price first, FIFO within a level
	assert.Equal(t, []uint64{301, 201, 202, 101}, frontIDs(q))

	levels := q.levels()
	assert.Len(t, levels, 3)
	assert.Equal(t, "30", levels[0].Price.String())
	assert.Equal(t, "20", levels[1].Price.String())
	assert.Equal(t, int64(110), levels[1].Size)
	assert.Equal(t, int64(2), levels[1].Count)
	assert.Equal(t, "10", levels[2].Price.String())
}

func TestSellerQueue(t *testing.T) {
	q := NewSellerQueue(structure.NewOrderArena[Order](4))

	addToQueue(q, 101, "10", 1)
	addToQueue(q, 201, "20", 10)
	addToQueue(q, 301, "30", 10)
	addToQueue(q, 202, "20", 100)

	// lowest price first
	assert.Equal(t, []uint64{101, 201, 202, 301}, frontIDs(q))
	assert.Equal(t, "10", q.frontUnit().price.String())
}

func TestQueueEquivalentPrices(t *testing.T) {
	q := NewSellerQueue(structure.NewOrderArena[Order](4))

	addToQueue(q, 1, "99.5", 10)
	addToQueue(q, 2, "99.50", 20)
	addToQueue(q, 3, "99.500", 30)

	assert.Equal(t, int64(1), q.depthCount())
	assert.Equal(t, int64(60), q.frontUnit().totalSize)
	assert.Equal(t, []uint64{1, 2, 3}, frontIDs(q))
}

func TestQueueRemoveOrder(t *testing.T) {
	q := NewBuyerQueue(structure.NewOrderArena[Order](4))

	h1 := addToQueue(q, 1, "50", 10)
	h2 := addToQueue(q, 2, "50", 20)
	h3 := addToQueue(q, 3, "40", 5)

	q.removeOrder(h1)
	assert.Equal(t, []uint64{2, 3}, frontIDs(q))
	assert.Equal(t, int64(20), q.frontUnit().totalSize)

	// emptying a level drops it
	q.removeOrder(h2)
	assert.Equal(t, int64(1), q.depthCount())
	assert.Equal(t, "40", q.frontUnit().price.String())

	q.removeOrder(h3)
	assert.Equal(t, int64(0), q.depthCount())
	assert.Equal(t, int64(0), q.orderCount())
	assert.Nil(t, q.frontUnit())
}

func TestQueueRemoveFrontLevel(t *testing.T) {
	q := NewSellerQueue(structure.NewOrderArena[Order](4))

	h1 := addToQueue(q, 1, "10", 1)
	h2 := addToQueue(q, 2, "10", 2)
	addToQueue(q, 3, "11", 3)

	remaining := q.removeFrontLevel()
	assert.Equal(t, []int32{h1, h2}, remaining)
	assert.Equal(t, int64(1), q.depthCount())
	assert.Equal(t, int64(1), q.orderCount())
	assert.Equal(t, "11", q.frontUnit().price.String())

	assert.NotNil(t, q.removeFrontLevel())
	assert.Nil(t, q.removeFrontLevel())
}

func TestQueueDepth(t *testing.T) {
	q := NewBuyerQueue(structure.NewOrderArena[Order](8))

	addToQueue(q, 1, "10", 1)
	addToQueue(q, 2, "20", 2)
	addToQueue(q, 3, "20", 3)
	addToQueue(q, 4, "30", 4)

	items := q.depth(2)
	assert.Len(t, items, 2)
	assert.Equal(t, uint32(0), items[0].ID)
	assert.Equal(t, "30", items[0].Price.String())
	assert.Equal(t, int64(4), items[0].Size)
	assert.Equal(t, "20", items[1].Price.String())
	assert.Equal(t, int64(5), items[1].Size)
	assert.Equal(t, int64(2), items[1].Count)

	assert.Len(t, q.depth(100), 3)
}
