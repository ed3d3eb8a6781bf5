package transport

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/rule"
	"github.com/google/uuid"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	BalanceRules interface {
		StartWatch(ctx context.Context, req rule.BalanceRequest) (*model.Rule, error)
		CancelRule(ctx context.Context, id uuid.UUID) (*model.Rule, error)
	}

	TransactionRules interface {
		StartWatch(ctx context.Context, req rule.TransactionRequest) (*model.Rule, error)
		CancelRule(ctx context.Context, id uuid.UUID) (*model.Rule, error)
	}

	RuleReader interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Rule, error)
	}

	CallbackRegistry interface {
		Add(ctx context.Context, sourceAddress, url string) (*model.Callback, error)
	}
)
