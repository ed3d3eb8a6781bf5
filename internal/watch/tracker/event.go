// Package tracker matches watches against block events and keeps their confirmation
// depth current across reorgs.
package tracker

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/google/uuid"
)

// EventType is the kind of chain event being processed.
type EventType int

const (
	BlockAdded EventType = iota + 1
	BlockRemoving
)

func (e EventType) String() string {
	switch e {
	case BlockAdded:
		return "added"
	case BlockRemoving:
		return "removing"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// ConfirmationType tells whether confirmations grew or shrank.
type ConfirmationType int

const (
	Confirmed ConfirmationType = iota + 1
	Unconfirming
)

func (c ConfirmationType) String() string {
	switch c {
	case Confirmed:
		return "confirmed"
	case Unconfirming:
		return "unconfirming"
	default:
		return fmt.Sprintf("confirmation(%d)", int(c))
	}
}

// ConfirmationTypeFor maps a chain event to its confirmation direction.
func ConfirmationTypeFor(event EventType) (ConfirmationType, error) {
	switch event {
	case BlockAdded:
		return Confirmed, nil
	case BlockRemoving:
		return Unconfirming, nil
	default:
		return 0, fmt.Errorf("unsupported event type %s", event)
	}
}

// Item is the constraint every tracked watch satisfies.
type Item interface {
	Key() uuid.UUID
	Origin() chainhash.Hash
	Rule() uuid.UUID
}
