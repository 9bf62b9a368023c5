package samples

import (
	"context"
	"errors"

	"github.com/betbot/alpacasamples/pkg/logger"
	"github.com/betbot/alpacasamples/pkg/sdk/stream"
)

type StreamParams struct {
	Symbols []string
	Trades  bool
	Quotes  bool
	Bars    bool
	// MaxMessages ends the sample after that many messages; 0 runs until cancelled.
	MaxMessages int
}

func DefaultStreamParams() StreamParams {
	return StreamParams{Symbols: []string{"AAPL"}, Trades: true, Quotes: true, MaxMessages: 10}
}

func (s StreamParams) subscription() stream.Subscription {
	var sub stream.Subscription
	if s.Trades {
		sub.Trades = s.Symbols
	}
	if s.Quotes {
		sub.Quotes = s.Symbols
	}
	if s.Bars {
		sub.Bars = s.Symbols
	}
	return sub
}

var errEnoughMessages = errors.New("message limit reached")

// RunStream prints live messages until MaxMessages arrive or ctx ends.
func RunStream(ctx context.Context, client StreamClient, p *Printer, params StreamParams) error {
	sub := params.subscription()
	if sub.Empty() {
		return errors.New("enable at least one of trades, quotes or bars")
	}

	count := 0
	err := client.Run(ctx, sub, func(m stream.Message) error {
		if err := p.Print(m); err != nil {
			return err
		}
		count++
		if params.MaxMessages > 0 && count >= params.MaxMessages {
			return errEnoughMessages
		}
		return nil
	})
	logger.Infof("stream closed after %d messages", count)
	if errors.Is(err, errEnoughMessages) {
		return nil
	}
	return err
}
