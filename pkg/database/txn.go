package database

import (
	"context"

	"gorm.io/gorm"
)

// CommitHooks collects callbacks registered during a transaction. The callbacks
// run only after the transaction commits; if it rolls back they are discarded.
type CommitHooks struct {
	hooks []func(ctx context.Context)
}

// AfterCommit registers fn to run after a successful commit
func (h *CommitHooks) AfterCommit(fn func(ctx context.Context)) {
	h.hooks = append(h.hooks, fn)
}

// Fire runs the registered callbacks in registration order
func (h *CommitHooks) Fire(ctx context.Context) {
	for _, fn := range h.hooks {
		fn(ctx)
	}
}

// RunInTransaction runs fn inside a gorm transaction and fires the commit hooks
// registered by fn once the transaction has committed
func RunInTransaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB, hooks *CommitHooks) error) error {
	hooks := &CommitHooks{}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx, hooks)
	})
	if err != nil {
		return err
	}

	hooks.Fire(ctx)
	return nil
}
