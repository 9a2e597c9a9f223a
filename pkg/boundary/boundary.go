// Package boundary is the top-level failure policy of the app. Production
// builds log failures and keep going, development builds log them and
// pass them on so they surface.
package boundary

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// PanicError is a recovered panic.
type PanicError struct {
	Value any
	Stack []byte
}

func (pe *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", pe.Value)
}

func (pe *PanicError) Unwrap() error {
	err, _ := pe.Value.(error)
	return err
}

type Boundary struct {
	Log      zerolog.Logger
	Suppress bool
}

func New(log zerolog.Logger, suppress bool) *Boundary {
	return &Boundary{
		Log:      log.With().Str("component", "boundary").Logger(),
		Suppress: suppress,
	}
}

// Run calls fn, turning a panic into a *PanicError. Every failure is
// logged. When Suppress is set the failure is swallowed and Run returns
// nil.
func (b *Boundary) Run(ctx context.Context, name string, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &PanicError{Value: p, Stack: debug.Stack()}
		}
		err = b.handle(name, err)
	}()
	return fn(ctx)
}

// Go runs fn on a new goroutine under the same policy. The returned
// channel receives the result of Run and is then closed.
func (b *Boundary) Go(ctx context.Context, name string, fn func(ctx context.Context) error) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- b.Run(ctx, name, fn)
	}()
	return done
}

func (b *Boundary) handle(name string, err error) error {
	if err == nil {
		return nil
	}
	evt := b.Log.Error().Err(err).Str("operation", name).Bool("suppressed", b.Suppress)
	if pe, ok := err.(*PanicError); ok {
		evt = evt.Bytes("stack", pe.Stack)
	}
	evt.Msg("Unhandled failure")
	if b.Suppress {
		return nil
	}
	return err
}
