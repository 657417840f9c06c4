package database

import (
	"context"
)

// Transactor runs a function inside a single multi-write storage transaction.
// Components that need all-or-nothing semantics take this as a dependency;
// components that deliberately stay best-effort simply never use it.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type mongoTransactor struct {
	handle *Handle
}

func NewTransactor(h *Handle) Transactor {
	return &mongoTransactor{handle: h}
}

// WithTransaction opens a session and runs fn inside it. The session is
// propagated through the context, so repository calls made with the callback
// context participate in the transaction without further plumbing.
func (t *mongoTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.handle.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx context.Context) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}
