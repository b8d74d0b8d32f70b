package match

import (
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"
)

// refOrder and refBook form a slice-based model of the book used as an oracle.
type refOrder struct {
	id    uint64
	side  Side
	price int64 // cents
	size  int64
}

type refTrade struct {
	buyID, sellID uint64
	qty           int64
	price         int64
}

type refBook struct {
	nextID uint64
	bids   []refOrder // priority order
	asks   []refOrder
}

func (r *refBook) process(side Side, price, size int64) (uint64, []refTrade) {
	r.nextID++
	in := refOrder{id: r.nextID, side: side, price: price, size: size}
	trades := make([]refTrade, 0)

	opp := &r.asks
	crosses := func(best int64) bool { return in.price >= best }
	if side == Sell {
		opp = &r.bids
		crosses = func(best int64) bool { return in.price <= best }
	}

	for in.size > 0 && len(*opp) > 0 && crosses((*opp)[0].price) {
		maker := &(*opp)[0]
		qty := min(in.size, maker.size)
		in.size -= qty
		maker.size -= qty

		tr := refTrade{qty: qty, price: maker.price, buyID: in.id, sellID: maker.id}
		if side == Sell {
			tr.buyID, tr.sellID = maker.id, in.id
		}
		trades = append(trades, tr)

		if maker.size == 0 {
			*opp = (*opp)[1:]
		}
	}

	if in.size > 0 {
		if side == Buy {
			r.bids = append(r.bids, in)
			sort.SliceStable(r.bids, func(i, j int) bool { return r.bids[i].price > r.bids[j].price })
		} else {
			r.asks = append(r.asks, in)
			sort.SliceStable(r.asks, func(i, j int) bool { return r.asks[i].price < r.asks[j].price })
		}
	}

	return in.id, trades
}

func (r *refBook) cancel(id uint64) (int64, bool) {
	for _, list := range []*[]refOrder{&r.bids, &r.asks} {
		for i, o := range *list {
			if o.id == id {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return o.size, true
			}
		}
	}
	return 0, false
}

func checkBookInvariants(t *rapid.T, book *OrderBook) int64 {
	snap := book.Snapshot()

	for i := 1; i < len(snap.Bids); i++ {
		if !snap.Bids[i-1].Price.GreaterThan(snap.Bids[i].Price) {
			t.Fatalf("bids not strictly descending: %s then %s", snap.Bids[i-1].Price, snap.Bids[i].Price)
		}
	}
	for i := 1; i < len(snap.Asks); i++ {
		if !snap.Asks[i-1].Price.LessThan(snap.Asks[i].Price) {
			t.Fatalf("asks not strictly ascending: %s then %s", snap.Asks[i-1].Price, snap.Asks[i].Price)
		}
	}

	var levelTotal int64
	for _, lvl := range append(append([]LevelSnapshot{}, snap.Bids...), snap.Asks...) {
		if lvl.Count == 0 || lvl.Size <= 0 {
			t.Fatalf("empty level %s left in book", lvl.Price)
		}
		levelTotal += lvl.Size
	}

	bids, asks := book.Orders()
	var orderTotal int64
	for _, o := range append(bids, asks...) {
		if o.Size <= 0 {
			t.Fatalf("order %d rests with size %d", o.ID, o.Size)
		}
		if _, ok := book.Order(o.ID); !ok {
			t.Fatalf("order %d missing from index", o.ID)
		}
		orderTotal += o.Size
	}

	if len(book.index) != len(bids)+len(asks) {
		t.Fatalf("index holds %d ids, book holds %d orders", len(book.index), len(bids)+len(asks))
	}
	if levelTotal != orderTotal {
		t.Fatalf("level total %d != order total %d", levelTotal, orderTotal)
	}

	return orderTotal
}

func TestProperty_EngineMatchesReferenceModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		engine := NewMatchingEngine(nil)
		ref := &refBook{}

		var inserted, matched, canceled int64
		steps := rapid.IntRange(1, 120).Draw(t, "steps")

		for i := 0; i < steps; i++ {
			if ref.nextID > 0 && rapid.IntRange(0, 4).Draw(t, "op") == 0 {
				id := rapid.Uint64Range(1, ref.nextID+1).Draw(t, "cancelID")

				want, found := ref.cancel(id)
				before, _ := engine.Book().Order(id)
				err := engine.CancelOrder(id)

				if found != (err == nil) {
					t.Fatalf("cancel %d: model found=%v, engine err=%v", id, found, err)
				}
				if found {
					if before.Size != want {
						t.Fatalf("cancel %d: engine size %d, model size %d", id, before.Size, want)
					}
					canceled += want
				}
			} else {
				side := rapid.SampledFrom([]Side{Buy, Sell}).Draw(t, "side")
				cents := rapid.Int64Range(9500, 10500).Draw(t, "cents") / 50 * 50
				size := rapid.Int64Range(1, 100).Draw(t, "size")

				// same price written with different exponents must share a level
				price := decimal.New(cents, -2)
				if cents%100 == 0 && rapid.Bool().Draw(t, "wholePrice") {
					price = decimal.NewFromInt(cents / 100)
				}

				order := &Order{Side: side, Price: price, Size: size}
				trades := engine.ProcessOrder(order)
				wantID, wantTrades := ref.process(side, cents, size)

				if order.ID != wantID {
					t.Fatalf("order id %d, want %d", order.ID, wantID)
				}
				if len(trades) != len(wantTrades) {
					t.Fatalf("order %d: %d trades, want %d", order.ID, len(trades), len(wantTrades))
				}

				inserted += size
				for j, tr := range trades {
					w := wantTrades[j]
					if tr.BuyOrderID != w.buyID || tr.SellOrderID != w.sellID || tr.Quantity != w.qty ||
						!tr.Price.Equal(decimal.New(w.price, -2)) {
						t.Fatalf("trade %d = %+v, want %+v", j, tr, w)
					}
					// each trade removes qty from both the taker and the maker
					matched += 2 * tr.Quantity
				}
			}

			resting := checkBookInvariants(t, engine.Book())
			if resting != inserted-matched-canceled {
				t.Fatalf("resting %d != inserted %d - matched %d - canceled %d", resting, inserted, matched, canceled)
			}
		}
	})
}

func TestProperty_DepthChangesReplayToSnapshot(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		publishTrader := NewMemoryPublishLog()
		engine := NewMatchingEngine(publishTrader)

		steps := rapid.IntRange(1, 80).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			if rapid.IntRange(0, 3).Draw(t, "op") == 0 {
				_ = engine.CancelOrder(rapid.Uint64Range(1, uint64(i+1)).Draw(t, "cancelID"))
				continue
			}
			engine.ProcessOrder(&Order{
				Side:  rapid.SampledFrom([]Side{Buy, Sell}).Draw(t, "side"),
				Price: decimal.NewFromInt(rapid.Int64Range(95, 105).Draw(t, "price")),
				Size:  rapid.Int64Range(1, 50).Draw(t, "size"),
			})
		}

		depth := map[Side]map[string]int64{Buy: {}, Sell: {}}
		for _, log := range publishTrader.Logs() {
			change := CalculateDepthChange(log)
			if change.SizeDiff == 0 {
				continue
			}
			key := change.Price.String()
			depth[change.Side][key] += change.SizeDiff
			if depth[change.Side][key] == 0 {
				delete(depth[change.Side], key)
			}
		}

		snap := engine.Snapshot()
		for side, levels := range map[Side][]LevelSnapshot{Buy: snap.Bids, Sell: snap.Asks} {
			if len(levels) != len(depth[side]) {
				t.Fatalf("%s: %d levels in book, %d replayed", side, len(levels), len(depth[side]))
			}
			for _, lvl := range levels {
				if got := depth[side][lvl.Price.String()]; got != lvl.Size {
					t.Fatalf("%s %s: replayed %d, book %d", side, lvl.Price, got, lvl.Size)
				}
			}
		}
	})
}
