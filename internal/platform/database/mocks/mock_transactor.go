package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTransactor runs the callback in place of a real session so the
// all-or-nothing flow can be exercised without a running replica set. A
// configured error short-circuits before the callback, like a failed session
// start would.
type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}
