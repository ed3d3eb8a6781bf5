//go:build !zmq

package main

import (
	"context"

	"go.uber.org/zap"
)

// startBlockSignal is the polling-only fallback used without the zmq build tag.
func startBlockSignal(_ context.Context, addr string, logger *zap.Logger) (<-chan struct{}, error) {
	if addr != "" {
		logger.Warn("zmq support not compiled in, falling back to polling", zap.String("zmq_addr", addr))
	}
	return nil, nil
}
