package tracker

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
)

// TransactionResolver hands each changed transaction watch to a TransactionHandler.
type TransactionResolver struct {
	handler TransactionHandler
}

// NewTransactionResolver creates a TransactionResolver.
func NewTransactionResolver(handler TransactionHandler) *TransactionResolver {
	return &TransactionResolver{handler: handler}
}

// Resolve implements Resolver.
func (r *TransactionResolver) Resolve(
	ctx context.Context,
	confirmations []Confirmation[model.TransactionWatch],
	ctype ConfirmationType,
) ([]model.TransactionWatch, error) {
	var resolved []model.TransactionWatch
	for _, c := range confirmations {
		if !c.Changed() {
			continue
		}
		done, err := r.handler.ConfirmationUpdate(ctx, c.Watch, c.Count, ctype)
		if err != nil {
			return nil, fmt.Errorf("transaction update for %s: %w", c.Watch.TxID, err)
		}
		if done {
			resolved = append(resolved, c.Watch)
		}
	}
	return resolved, nil
}
