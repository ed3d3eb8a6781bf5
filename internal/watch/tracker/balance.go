package tracker

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
)

// BalanceConfirmation is one balance watch of an address at its current depth.
type BalanceConfirmation struct {
	Watch        model.BalanceWatch
	Amount       btcutil.Amount
	Confirmation int
}

// BalanceResolver groups balance watches by address and hands each changed group to a
// BalanceHandler.
type BalanceResolver struct {
	handler BalanceHandler
}

// NewBalanceResolver creates a BalanceResolver.
func NewBalanceResolver(handler BalanceHandler) *BalanceResolver {
	return &BalanceResolver{handler: handler}
}

// Resolve implements Resolver.
func (r *BalanceResolver) Resolve(
	ctx context.Context,
	confirmations []Confirmation[model.BalanceWatch],
	ctype ConfirmationType,
) ([]model.BalanceWatch, error) {
	var order []string
	groups := make(map[string][]Confirmation[model.BalanceWatch])
	for _, c := range confirmations {
		address := c.Watch.Address
		if _, ok := groups[address]; !ok {
			order = append(order, address)
		}
		groups[address] = append(groups[address], c)
	}

	var resolved []model.BalanceWatch
	for _, address := range order {
		group := groups[address]
		changed := false
		for _, c := range group {
			changed = changed || c.Changed()
		}
		if !changed {
			continue
		}

		update := make([]BalanceConfirmation, 0, len(group))
		for _, c := range group {
			update = append(update, BalanceConfirmation{
				Watch:        c.Watch,
				Amount:       c.Watch.BalanceChange,
				Confirmation: c.Count,
			})
		}
		done, err := r.handler.ConfirmationUpdate(ctx, address, update, ctype)
		if err != nil {
			return nil, fmt.Errorf("balance update for %s: %w", address, err)
		}
		if done {
			for _, c := range group {
				resolved = append(resolved, c.Watch)
			}
		}
	}
	return resolved, nil
}
