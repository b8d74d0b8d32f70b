package match

import (
	"log/slog"
	"time"

	"github.com/rs/xid"
	"github.com/shopspring/decimal"
)

// MatchingEngine assigns order ids, runs price-time priority matching against
// its OrderBook and rests any unmatched remainder.
//
// A MatchingEngine is strictly sequential: calls must not overlap. Use
// SyncMatchingEngine when several goroutines share one book.
type MatchingEngine struct {
	id            string
	nextOrderID   uint64
	tradeID       uint64
	seqID         uint64
	book          *OrderBook
	publishTrader PublishLog
	logger        *slog.Logger
}

// NewMatchingEngine creates a new matching engine with an empty book.
// A nil publishTrader discards all book logs. The package logger is captured
// at construction, so SetLogger must be called first to take effect.
func NewMatchingEngine(publishTrader PublishLog) *MatchingEngine {
	if publishTrader == nil {
		publishTrader = NewDiscardPublishLog()
	}

	id := xid.New().String()
	return &MatchingEngine{
		id:            id,
		book:          NewOrderBook(),
		publishTrader: publishTrader,
		logger:        engineLogger(id),
	}
}

// ID returns the unique id of this engine instance.
func (engine *MatchingEngine) ID() string {
	return engine.id
}

// Book exposes the underlying order book for read-only queries.
func (engine *MatchingEngine) Book() *OrderBook {
	return engine.book
}

// direction fixes which side an incoming order rests on and which side it matches against.
type direction struct {
	own      Side
	opposite Side
}

func directionOf(side Side) direction {
	return direction{own: side, opposite: side.Opposite()}
}

// crosses reports whether an incoming limit may trade at the best opposing price.
func (d direction) crosses(limit, best decimal.Decimal) bool {
	if d.own == Buy {
		return limit.GreaterThanOrEqual(best)
	}
	return limit.LessThanOrEqual(best)
}

// ProcessOrder stamps a new id on order, matches it and rests the remainder.
// order.ID and order.Size are updated in place; after the call Size holds the
// quantity that was left resting (zero when fully filled). The returned trades
// are in execution order; an empty slice means nothing traded.
func (engine *MatchingEngine) ProcessOrder(order *Order) []Trade {
	engine.nextOrderID++
	order.ID = engine.nextOrderID

	now := time.Now().UTC()
	order.Timestamp = now.UnixNano()

	logs := make([]*BookLog, 0, 8)

	trades, logs := engine.match(order, directionOf(order.Side), logs, now)

	if order.Size > 0 {
		engine.book.Insert(order)
		logs = append(logs, NewOpenLog(engine.nextSeqID(), order, now))
	}

	engine.publishTrader.Publish(logs...)

	engine.logger.Debug("order processed",
		slog.Uint64("order_id", order.ID),
		slog.String("side", order.Side.String()),
		slog.String("price", order.Price.String()),
		slog.Int("trades", len(trades)),
		slog.Int64("resting", order.Size),
	)

	return trades
}

// match consumes the best opposing levels FIFO while the incoming limit crosses.
func (engine *MatchingEngine) match(order *Order, dir direction, logs []*BookLog, now time.Time) ([]Trade, []*BookLog) {
	book := engine.book
	trades := make([]Trade, 0)

	for order.Size > 0 && book.hasOrders(dir.opposite) {
		best, _ := book.bestPrice(dir.opposite)
		if !dir.crosses(order.Price, best) {
			break
		}

		for order.Size > 0 {
			maker, filled, drained := book.fillFront(dir.opposite, order.Size)
			order.Size -= filled

			trade := engine.newTrade(order, &maker, filled, dir)
			trades = append(trades, trade)
			logs = append(logs, NewMatchLog(engine.nextSeqID(), order, &trade, maker.ID, now))

			if drained {
				book.removeBest(dir.opposite)
				break
			}
		}
	}

	return trades, logs
}

func (engine *MatchingEngine) newTrade(taker *Order, maker *Order, qty int64, dir direction) Trade {
	engine.tradeID++
	trade := Trade{
		ID:        engine.tradeID,
		Quantity:  qty,
		Price:     maker.Price,
		TakerSide: dir.own,
	}

	if dir.own == Buy {
		trade.BuyOrderID = taker.ID
		trade.SellOrderID = maker.ID
	} else {
		trade.BuyOrderID = maker.ID
		trade.SellOrderID = taker.ID
	}

	return trade
}

// CancelOrder removes a resting order.
// It returns ErrNotFound, without changing the book, if id is unknown or
// already filled or canceled. That outcome is also logged and published as a
// reject log; it is never fatal.
func (engine *MatchingEngine) CancelOrder(id uint64) error {
	now := time.Now().UTC()

	order, err := engine.book.Cancel(id)
	if err != nil {
		engine.logger.Warn("cannot cancel order: not found or already filled",
			slog.Uint64("order_id", id),
		)
		engine.publishTrader.Publish(NewRejectLog(engine.nextSeqID(), id, RejectReasonOrderNotFound, now))
		return err
	}

	engine.publishTrader.Publish(NewCancelLog(engine.nextSeqID(), &order, now))
	engine.logger.Debug("order canceled",
		slog.Uint64("order_id", id),
		slog.Int64("size", order.Size),
	)

	return nil
}

// Snapshot returns the per-level aggregate view of the book.
func (engine *MatchingEngine) Snapshot() BookSnapshot {
	return engine.book.Snapshot()
}

// Depth returns the book depth up to limit levels per side.
func (engine *MatchingEngine) Depth(limit uint32) (*Depth, error) {
	return engine.book.Depth(limit)
}

// Stats returns usage statistics for the order book.
func (engine *MatchingEngine) Stats() *BookStats {
	return engine.book.Stats()
}

func (engine *MatchingEngine) nextSeqID() uint64 {
	engine.seqID++
	return engine.seqID
}
