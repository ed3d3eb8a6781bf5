//go:build zmq

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pebbe/zmq4"
	"go.uber.org/zap"
)

// startBlockSignal subscribes to bitcoind's hashblock topic and signals every new
// block. A nil channel is returned when addr is empty.
func startBlockSignal(ctx context.Context, addr string, logger *zap.Logger) (<-chan struct{}, error) {
	if addr == "" {
		return nil, nil
	}

	sub, err := newSubscriber(addr, "hashblock")
	if err != nil {
		return nil, fmt.Errorf("connect zmq: %w", err)
	}
	if err := sub.SetRcvtimeo(time.Second); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("set zmq receive timeout: %w", err)
	}

	notify := make(chan struct{}, 1)
	logger = logger.Named("block_signal")

	go func() {
		defer func() {
			_ = sub.Close()
		}()
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			msgParts, err := sub.RecvMessageBytes(0)
			if err != nil {
				if zmq4.AsErrno(err) == zmq4.Errno(zmq4.ETIMEDOUT) || zmq4.AsErrno(err) == zmq4.Errno(11) {
					continue
				}
				logger.Warn("zmq recv failed", zap.Error(err))
				time.Sleep(time.Second)
				continue
			}
			if len(msgParts) < 2 {
				logger.Warn("skip malformed zmq message", zap.Int("parts", len(msgParts)))
				continue
			}

			select {
			case notify <- struct{}{}:
			default:
			}
		}
	}()

	return notify, nil
}

func newSubscriber(addr string, topics ...string) (*zmq4.Socket, error) {
	sub, err := zmq4.NewSocket(zmq4.SUB)
	if err != nil {
		return nil, err
	}

	for _, topic := range topics {
		if err := sub.SetSubscribe(topic); err != nil {
			_ = sub.Close()
			return nil, err
		}
	}

	if err := sub.Connect(addr); err != nil {
		_ = sub.Close()
		return nil, err
	}
	return sub, nil
}
