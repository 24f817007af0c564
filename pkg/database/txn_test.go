package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommitHooks_FireInRegistrationOrder(t *testing.T) {
	hooks := &CommitHooks{}

	var order []int
	hooks.AfterCommit(func(ctx context.Context) { order = append(order, 1) })
	hooks.AfterCommit(func(ctx context.Context) { order = append(order, 2) })
	hooks.AfterCommit(func(ctx context.Context) { order = append(order, 3) })

	hooks.Fire(context.Background())

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestCommitHooks_FireWithoutHooks(t *testing.T) {
	hooks := &CommitHooks{}
	assert.NotPanics(t, func() { hooks.Fire(context.Background()) })
}
