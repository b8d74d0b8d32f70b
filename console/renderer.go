package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	match "github.com/Sai-Devesh/Limit-Order-Book-Matching-Engine"
	"github.com/Sai-Devesh/Limit-Order-Book-Matching-Engine/protocol"
)

// Renderer presents engine results to the user.
type Renderer interface {
	Help()
	Prompt()
	Processing(order *match.Order)
	Trades(orderID uint64, trades []match.Trade)
	Canceled(orderID uint64, err error)
	Book(snap match.BookSnapshot)
	Error(line string, err error)
	Exit()
}

const columnWidth = 35

// TextRenderer writes the human readable console format.
type TextRenderer struct {
	out    io.Writer
	errOut io.Writer
	prompt bool
}

// NewTextRenderer writes results to out and diagnostics to errOut.
// The "> " prompt is printed only when prompt is true.
func NewTextRenderer(out, errOut io.Writer, prompt bool) *TextRenderer {
	return &TextRenderer{out: out, errOut: errOut, prompt: prompt}
}

func (r *TextRenderer) Help() {
	fmt.Fprint(r.out, "\n--- Limit Order Book Matching Engine ---\n")
	fmt.Fprint(r.out, "Commands:\n")
	fmt.Fprint(r.out, "  BUY <shares> <price>   (e.g., BUY 100 99.50)\n")
	fmt.Fprint(r.out, "  SELL <shares> <price>  (e.g., SELL 50 100.50)\n")
	fmt.Fprint(r.out, "  CANCEL <order_id>      (e.g., CANCEL 1)\n")
	fmt.Fprint(r.out, "  VIEW                   (to display the current order book)\n")
	fmt.Fprint(r.out, "  EXIT                   (to close the application)\n")
	fmt.Fprint(r.out, "----------------------------------------\n\n")
}

func (r *TextRenderer) Prompt() {
	if r.prompt {
		fmt.Fprint(r.out, "> ")
	}
}

func (r *TextRenderer) Processing(order *match.Order) {
	fmt.Fprintf(r.out, ">> Processing %s order for %d shares at %s (ID will be assigned)\n",
		order.Side, order.Size, order.Price.String())
}

func (r *TextRenderer) Trades(orderID uint64, trades []match.Trade) {
	if len(trades) == 0 {
		fmt.Fprintln(r.out, ">> No trades executed.")
		return
	}

	fmt.Fprintf(r.out, ">> %d Trade(s) Executed:\n", len(trades))
	for _, trade := range trades {
		fmt.Fprintf(r.out, "   - Trade: Buy Order %d & Sell Order %d | Quantity: %d @ Price: %s\n",
			trade.BuyOrderID, trade.SellOrderID, trade.Quantity, trade.Price.String())
	}
}

func (r *TextRenderer) Canceled(orderID uint64, err error) {
	if err != nil {
		fmt.Fprintf(r.errOut, "Error: Cannot cancel. Order ID %d not found or already filled.\n", orderID)
		return
	}
	fmt.Fprintf(r.out, ">> Order %d canceled.\n", orderID)
}

func (r *TextRenderer) Book(snap match.BookSnapshot) {
	fmt.Fprint(r.out, "\n=================================================================\n")
	fmt.Fprintf(r.out, "%-*s | %s\n", columnWidth, "           BIDS (BUY)", "ASKS (SELL)")
	fmt.Fprint(r.out, "-----------------------------------------------------------------\n")

	rows := max(len(snap.Bids), len(snap.Asks))
	for i := 0; i < rows; i++ {
		var bid, ask string
		if i < len(snap.Bids) {
			bid = formatLevel(snap.Bids[i])
		}
		if i < len(snap.Asks) {
			ask = formatLevel(snap.Asks[i])
		}
		fmt.Fprintf(r.out, "%-*s | %-*s\n", columnWidth, bid, columnWidth, ask)
	}

	fmt.Fprint(r.out, "=================================================================\n")
}

func formatLevel(level match.LevelSnapshot) string {
	return fmt.Sprintf("%d @ %s", level.Size, level.Price.StringFixed(2))
}

func (r *TextRenderer) Error(line string, err error) {
	word := ""
	if fields := strings.Fields(line); len(fields) > 0 {
		word = strings.ToUpper(fields[0])
	}

	switch {
	case errors.Is(err, ErrUnknownCommand):
		fmt.Fprintf(r.errOut, "Error: Unknown command '%s'\n", line)
	case word == "CANCEL":
		fmt.Fprintln(r.errOut, "Error: Invalid format or non-positive Order ID. Use: CANCEL <order_id>")
	case word == "BUY" || word == "SELL":
		fmt.Fprintf(r.errOut, "Error: Invalid format or non-positive values. Use: %s <shares> <price>\n", word)
	default:
		fmt.Fprintf(r.errOut, "Error: %v\n", err)
	}
}

func (r *TextRenderer) Exit() {
	fmt.Fprintln(r.out, "\nExiting application.")
}

// JSONRenderer writes one serialized response per line.
type JSONRenderer struct {
	out        io.Writer
	serializer protocol.Serializer
}

// NewJSONRenderer writes responses to out using serializer.
// A nil serializer selects protocol.DefaultJSONSerializer.
func NewJSONRenderer(out io.Writer, serializer protocol.Serializer) *JSONRenderer {
	if serializer == nil {
		serializer = &protocol.DefaultJSONSerializer{}
	}
	return &JSONRenderer{out: out, serializer: serializer}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (r *JSONRenderer) write(v any) {
	data, err := r.serializer.Marshal(v)
	if err != nil {
		data, _ = r.serializer.Marshal(errorResponse{Error: err.Error()})
	}
	_, _ = r.out.Write(append(data, '\n'))
}

func (r *JSONRenderer) Help()                                      {}
func (r *JSONRenderer) Prompt()                                    {}
func (r *JSONRenderer) Processing(order *match.Order)             {}
func (r *JSONRenderer) Exit()                                      {}

func (r *JSONRenderer) Trades(orderID uint64, trades []match.Trade) {
	resp := &protocol.PlaceOrderResponse{
		OrderID: orderID,
		Trades:  make([]*protocol.TradeReport, 0, len(trades)),
	}
	for _, trade := range trades {
		resp.Trades = append(resp.Trades, &protocol.TradeReport{
			TradeID:     trade.ID,
			BuyOrderID:  trade.BuyOrderID,
			SellOrderID: trade.SellOrderID,
			Quantity:    trade.Quantity,
			Price:       trade.Price.String(),
		})
	}
	r.write(resp)
}

func (r *JSONRenderer) Canceled(orderID uint64, err error) {
	resp := &protocol.CancelOrderResponse{OrderID: orderID, Canceled: err == nil}
	if errors.Is(err, match.ErrNotFound) {
		resp.RejectReason = protocol.RejectReasonOrderNotFound
	}
	r.write(resp)
}

func (r *JSONRenderer) Book(snap match.BookSnapshot) {
	r.write(&protocol.GetDepthResponse{
		Bids: depthItems(snap.Bids),
		Asks: depthItems(snap.Asks),
	})
}

func depthItems(levels []match.LevelSnapshot) []*protocol.DepthItem {
	items := make([]*protocol.DepthItem, 0, len(levels))
	for _, level := range levels {
		items = append(items, &protocol.DepthItem{
			Price: level.Price.StringFixed(2),
			Size:  level.Size,
			Count: level.Count,
		})
	}
	return items
}

func (r *JSONRenderer) Error(line string, err error) {
	r.write(errorResponse{Error: err.Error()})
}
