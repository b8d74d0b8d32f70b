package console

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"

	match "github.com/Sai-Devesh/Limit-Order-Book-Matching-Engine"
	"github.com/Sai-Devesh/Limit-Order-Book-Matching-Engine/protocol"
)

// Engine is the part of the matching engine the console drives.
// Both *match.MatchingEngine and *match.SyncMatchingEngine satisfy it.
type Engine interface {
	ProcessOrder(order *match.Order) []match.Trade
	CancelOrder(id uint64) error
	Snapshot() match.BookSnapshot
}

// Console reads commands line by line and renders the engine's answers.
type Console struct {
	engine   Engine
	renderer Renderer
	logger   *slog.Logger
}

// New creates a console. A nil logger discards log records.
func New(engine Engine, renderer Renderer, logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Console{engine: engine, renderer: renderer, logger: logger}
}

// Run processes input until EOF, an EXIT command or ctx cancellation.
// Invalid lines are reported and skipped; they never stop the loop.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	c.renderer.Help()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.renderer.Prompt()
		if !scanner.Scan() {
			break
		}

		line := scanner.Text()
		cmd, err := ParseLine(line)
		if errors.Is(err, ErrEmptyLine) {
			continue
		}
		if err != nil {
			c.logger.Debug("rejected input", slog.String("line", line), slog.String("error", err.Error()))
			c.renderer.Error(line, err)
			continue
		}

		if cmd.Type == protocol.CmdExit {
			break
		}
		c.Execute(cmd)
	}

	c.renderer.Exit()
	return scanner.Err()
}

// Execute applies one parsed command to the engine.
func (c *Console) Execute(cmd *protocol.Command) {
	switch cmd.Type {
	case protocol.CmdPlaceOrder:
		// already validated by ParseLine
		price, _ := cmd.Place.Validate()
		order := &match.Order{
			Side:  cmd.Place.Side,
			Price: price,
			Size:  cmd.Place.Size,
		}

		c.renderer.Processing(order)
		trades := c.engine.ProcessOrder(order)
		c.renderer.Trades(order.ID, trades)
	case protocol.CmdCancelOrder:
		err := c.engine.CancelOrder(cmd.Cancel.OrderID)
		c.renderer.Canceled(cmd.Cancel.OrderID, err)
	case protocol.CmdView:
		c.renderer.Book(c.engine.Snapshot())
	case protocol.CmdHelp:
		c.renderer.Help()
	case protocol.CmdExit, protocol.CmdUnknown:
	}
}
