// Package notify delivers operator alerts about pipeline work over email
// and Telegram.
package notify

import (
	"context"
	"errors"
	"fmt"
)

// Message is a channel-neutral alert.
type Message struct {
	Subject string
	Body    string
}

type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Multi fans a message out to every channel. A failing channel does not
// stop the others; the errors are joined.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, msg Message) error {
	var errs []error
	for _, n := range m {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := n.Notify(ctx, msg); err != nil {
			errs = append(errs, fmt.Errorf("%T: %w", n, err))
		}
	}
	return errors.Join(errs...)
}
