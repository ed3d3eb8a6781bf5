// Package chain turns a node's block interface into an ordered, fork-aware stream of
// block events.
package chain

import "fmt"

// HintAction tells the Retriever what to do next.
type HintAction int

const (
	// HintStop ends the pump cleanly.
	HintStop HintAction = iota
	// HintWait waits for a new-block signal or the poll interval before asking again.
	HintWait
	// HintFetch fetches the block at Hint.Height immediately.
	HintFetch
)

// Hint is the next step requested by a BlockHandler.
type Hint struct {
	Action HintAction
	Height uint64
}

// FetchHint requests the block at height.
func FetchHint(height uint64) Hint {
	return Hint{Action: HintFetch, Height: height}
}

// WaitHint requests waiting for a new block.
func WaitHint() Hint {
	return Hint{Action: HintWait}
}

// StopHint requests a clean stop.
func StopHint() Hint {
	return Hint{Action: HintStop}
}

func (h Hint) String() string {
	switch h.Action {
	case HintStop:
		return "stop"
	case HintWait:
		return "wait"
	case HintFetch:
		return fmt.Sprintf("fetch(%d)", h.Height)
	default:
		return fmt.Sprintf("unknown(%d)", h.Action)
	}
}
