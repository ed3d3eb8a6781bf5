package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Callback status values recorded in callback history.
const (
	CallbackStatusSuccess = "success"
	CallbackStatusTimeout = "timeout"
)

// Callback is an externally registered delivery target.
type Callback struct {
	ID                      uuid.UUID
	RegisteredSourceAddress string
	RegisteredTime          time.Time
	Completed               bool
	URL                     string
}

// CallbackResult is one entry of a callback's append-only history.
type CallbackResult struct {
	RuleID uuid.UUID
	Status string
	Data   json.RawMessage
}

// CallbackHistory is a stored CallbackResult.
type CallbackHistory struct {
	CallbackID uuid.UUID
	Result     CallbackResult
	InvokedAt  time.Time
}
