package protocol

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidPayload is returned when a command fails validation.
var ErrInvalidPayload = errors.New("invalid payload")

// CommandType defines the type of the command (using uint8 for memory alignment and performance)
type CommandType uint8

const (
	CmdUnknown     CommandType = 0
	CmdPlaceOrder  CommandType = 51
	CmdCancelOrder CommandType = 52
	CmdView        CommandType = 53
	CmdHelp        CommandType = 54
	CmdExit        CommandType = 55
)

// Command is the standard carrier for requests entering the matching engine.
// Exactly one of the payload pointers is set for order commands.
type Command struct {
	Type   CommandType         `json:"type"`
	Place  *PlaceOrderCommand  `json:"place,omitempty"`
	Cancel *CancelOrderCommand `json:"cancel,omitempty"`
}

// PlaceOrderCommand is the payload for placing a new limit order.
type PlaceOrderCommand struct {
	Side  Side   `json:"side"`
	Price string `json:"price"` // Using string to prevent precision loss in JSON
	Size  int64  `json:"size"`
}

// Validate checks side, size and price. Price must be a positive decimal.
func (cmd *PlaceOrderCommand) Validate() (decimal.Decimal, error) {
	if cmd.Side != SideBuy && cmd.Side != SideSell {
		return decimal.Zero, fmt.Errorf("%w: unknown side %d", ErrInvalidPayload, cmd.Side)
	}

	if cmd.Size <= 0 {
		return decimal.Zero, fmt.Errorf("%w: size must be positive", ErrInvalidPayload)
	}

	price, err := decimal.NewFromString(cmd.Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: price %q: %v", ErrInvalidPayload, cmd.Price, err)
	}

	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: price must be positive", ErrInvalidPayload)
	}

	return price, nil
}

// CancelOrderCommand is the payload for cancelling an existing order.
type CancelOrderCommand struct {
	OrderID uint64 `json:"order_id"`
}

// Validate checks that the order id is positive.
func (cmd *CancelOrderCommand) Validate() error {
	if cmd.OrderID == 0 {
		return fmt.Errorf("%w: order id must be positive", ErrInvalidPayload)
	}
	return nil
}
