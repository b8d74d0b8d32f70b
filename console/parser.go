package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Sai-Devesh/Limit-Order-Book-Matching-Engine/protocol"
)

var (
	ErrEmptyLine      = errors.New("empty line")
	ErrUnknownCommand = errors.New("unknown command")
)

// ParseLine turns one input line into a command. The command word is case-insensitive.
//
//	BUY <shares> <price>
//	SELL <shares> <price>
//	CANCEL <order_id>
//	VIEW | HELP | EXIT
//
// Order payloads are validated before they are returned; failures wrap
// protocol.ErrInvalidPayload.
func ParseLine(line string) (*protocol.Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, ErrEmptyLine
	}

	word := strings.ToUpper(fields[0])
	args := fields[1:]

	switch word {
	case "BUY", "SELL":
		return parsePlace(word, args)
	case "CANCEL":
		return parseCancel(args)
	case "VIEW":
		return &protocol.Command{Type: protocol.CmdView}, nil
	case "HELP":
		return &protocol.Command{Type: protocol.CmdHelp}, nil
	case "EXIT":
		return &protocol.Command{Type: protocol.CmdExit}, nil
	}

	return nil, fmt.Errorf("%w %q", ErrUnknownCommand, strings.TrimSpace(line))
}

func parsePlace(word string, args []string) (*protocol.Command, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%w: expected <shares> <price>", protocol.ErrInvalidPayload)
	}

	shares, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: shares %q", protocol.ErrInvalidPayload, args[0])
	}

	side := protocol.SideBuy
	if word == "SELL" {
		side = protocol.SideSell
	}

	place := &protocol.PlaceOrderCommand{
		Side:  side,
		Size:  shares,
		Price: args[1],
	}
	if _, err := place.Validate(); err != nil {
		return nil, err
	}

	return &protocol.Command{Type: protocol.CmdPlaceOrder, Place: place}, nil
}

func parseCancel(args []string) (*protocol.Command, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("%w: expected <order_id>", protocol.ErrInvalidPayload)
	}

	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: order id %q", protocol.ErrInvalidPayload, args[0])
	}

	cancel := &protocol.CancelOrderCommand{OrderID: id}
	if err := cancel.Validate(); err != nil {
		return nil, err
	}

	return &protocol.Command{Type: protocol.CmdCancelOrder, Cancel: cancel}, nil
}
