// Package transport exposes the watcher over REST and gRPC.
package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/rule"
	"github.com/google/uuid"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
)

type registerCallbackRequest struct {
	URL string `json:"url"`
}

type callbackResponse struct {
	ID                      uuid.UUID `json:"id"`
	RegisteredSourceAddress string    `json:"registered_source_address"`
	RegisteredTime          time.Time `json:"registered_time"`
	Completed               bool      `json:"completed"`
	URL                     string    `json:"url"`
}

type balanceRuleRequest struct {
	Address            string          `json:"address"`
	Amount             int64           `json:"amount"`
	Confirmations      int             `json:"confirmations"`
	WaitingTimeSeconds int64           `json:"waiting_time_seconds"`
	SuccessData        json.RawMessage `json:"success_data,omitempty"`
	TimeoutData        json.RawMessage `json:"timeout_data,omitempty"`
	CallbackID         *uuid.UUID      `json:"callback_id,omitempty"`
}

type transactionRuleRequest struct {
	TxID               string          `json:"txid"`
	Confirmations      int             `json:"confirmations"`
	WaitingTimeSeconds int64           `json:"waiting_time_seconds"`
	SuccessData        json.RawMessage `json:"success_data,omitempty"`
	TimeoutData        json.RawMessage `json:"timeout_data,omitempty"`
	CallbackID         *uuid.UUID      `json:"callback_id,omitempty"`
}

type ruleResponse struct {
	ID                          uuid.UUID       `json:"id"`
	Kind                        string          `json:"kind"`
	Subject                     string          `json:"subject"`
	TargetAmount                int64           `json:"target_amount,omitempty"`
	TargetConfirmation          int             `json:"target_confirmation"`
	OriginalWaitingTimeSeconds  int64           `json:"original_waiting_time_seconds"`
	RemainingWaitingTimeSeconds int64           `json:"remaining_waiting_time_seconds"`
	Status                      string          `json:"status"`
	SuccessData                 json.RawMessage `json:"success_data,omitempty"`
	TimeoutData                 json.RawMessage `json:"timeout_data,omitempty"`
	CallbackID                  *uuid.UUID      `json:"callback_id,omitempty"`
	CreatedAt                   time.Time       `json:"created_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// RuleHandler serves the REST surface for callbacks and rules.
type RuleHandler struct {
	balance      BalanceRules
	transactions TransactionRules
	rules        RuleReader
	callbacks    CallbackRegistry
	marshaler    gwruntime.Marshaler
	logger       *zap.Logger
}

func NewRuleHandler(
	balance BalanceRules,
	transactions TransactionRules,
	rules RuleReader,
	callbacks CallbackRegistry,
	logger *zap.Logger,
) *RuleHandler {
	return &RuleHandler{
		balance:      balance,
		transactions: transactions,
		rules:        rules,
		callbacks:    callbacks,
		marshaler:    &gwruntime.JSONBuiltin{},
		logger:       logger.Named("rule_handler"),
	}
}

// Register attaches the REST routes to mux.
func (h *RuleHandler) Register(mux *gwruntime.ServeMux) error {
	routes := []struct {
		method  string
		path    string
		handler gwruntime.HandlerFunc
	}{
		{http.MethodPost, "/v1/callbacks", h.registerCallback},
		{http.MethodPost, "/v1/rules/balance", h.createBalanceRule},
		{http.MethodPost, "/v1/rules/transaction", h.createTransactionRule},
		{http.MethodGet, "/v1/rules/{id}", h.getRule},
		{http.MethodDelete, "/v1/rules/{id}", h.cancelRule},
	}
	for _, r := range routes {
		if err := mux.HandlePath(r.method, r.path, r.handler); err != nil {
			return fmt.Errorf("register %s %s: %w", r.method, r.path, err)
		}
	}
	return nil
}

func (h *RuleHandler) registerCallback(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req registerCallbackRequest
	if err := h.marshaler.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	if req.URL == "" {
		h.writeError(w, fmt.Errorf("%w: url is required", errBadRequest))
		return
	}

	cb, err := h.callbacks.Add(r.Context(), sourceAddress(r), req.URL)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.write(w, http.StatusCreated, callbackResponse{
		ID:                      cb.ID,
		RegisteredSourceAddress: cb.RegisteredSourceAddress,
		RegisteredTime:          cb.RegisteredTime,
		Completed:               cb.Completed,
		URL:                     cb.URL,
	})
}

func (h *RuleHandler) createBalanceRule(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req balanceRuleRequest
	if err := h.marshaler.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	wait, err := waitingTime(req.WaitingTimeSeconds)
	if err != nil {
		h.writeError(w, err)
		return
	}

	created, err := h.balance.StartWatch(r.Context(), rule.BalanceRequest{
		Address:            req.Address,
		Amount:             btcutil.Amount(req.Amount),
		TargetConfirmation: req.Confirmations,
		WaitingTime:        wait,
		SuccessData:        req.SuccessData,
		TimeoutData:        req.TimeoutData,
		CallbackID:         req.CallbackID,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.write(w, http.StatusCreated, newRuleResponse(created))
}

func (h *RuleHandler) createTransactionRule(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req transactionRuleRequest
	if err := h.marshaler.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	wait, err := waitingTime(req.WaitingTimeSeconds)
	if err != nil {
		h.writeError(w, err)
		return
	}

	created, err := h.transactions.StartWatch(r.Context(), rule.TransactionRequest{
		TxID:               req.TxID,
		TargetConfirmation: req.Confirmations,
		WaitingTime:        wait,
		SuccessData:        req.SuccessData,
		TimeoutData:        req.TimeoutData,
		CallbackID:         req.CallbackID,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.write(w, http.StatusCreated, newRuleResponse(created))
}

// waitingTime converts whole seconds to a duration, rejecting values a
// time.Duration cannot hold.
func waitingTime(seconds int64) (time.Duration, error) {
	if seconds <= 0 || seconds > math.MaxInt64/int64(time.Second) {
		return 0, fmt.Errorf("waiting time %ds: %w", seconds, model.ErrInvalidTimeout)
	}
	return time.Duration(seconds) * time.Second, nil
}

func (h *RuleHandler) getRule(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, err := uuid.Parse(params["id"])
	if err != nil {
		h.writeError(w, fmt.Errorf("%w: rule id: %v", errBadRequest, err))
		return
	}

	found, err := h.rules.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.write(w, http.StatusOK, newRuleResponse(found))
}

func (h *RuleHandler) cancelRule(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, err := uuid.Parse(params["id"])
	if err != nil {
		h.writeError(w, fmt.Errorf("%w: rule id: %v", errBadRequest, err))
		return
	}

	found, err := h.rules.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var cancelled *model.Rule
	switch found.Kind {
	case model.RuleBalance:
		cancelled, err = h.balance.CancelRule(r.Context(), id)
	case model.RuleTransaction:
		cancelled, err = h.transactions.CancelRule(r.Context(), id)
	default:
		err = fmt.Errorf("rule %s has unknown kind %q", id, found.Kind)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.write(w, http.StatusOK, newRuleResponse(cancelled))
}

var errBadRequest = errors.New("bad request")

func statusCode(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, model.ErrInvalidSubject),
		errors.Is(err, model.ErrInvalidTarget),
		errors.Is(err, model.ErrInvalidConfirmation),
		errors.Is(err, model.ErrInvalidTimeout),
		errors.Is(err, model.ErrCallbackNotFound),
		errors.Is(err, model.ErrCallbackCompleted):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrSubjectBusy):
		return http.StatusConflict
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrNotStarted), errors.Is(err, model.ErrStopped):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *RuleHandler) writeError(w http.ResponseWriter, err error) {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}
	h.write(w, code, errorResponse{Error: err.Error()})
}

func (h *RuleHandler) write(w http.ResponseWriter, code int, v any) {
	body, err := h.marshaler.Marshal(v)
	if err != nil {
		h.logger.Error("encode response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", h.marshaler.ContentType(v))
	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		h.logger.Debug("write response", zap.Error(err))
	}
}

func newRuleResponse(r *model.Rule) ruleResponse {
	return ruleResponse{
		ID:                          r.ID,
		Kind:                        string(r.Kind),
		Subject:                     r.Subject,
		TargetAmount:                int64(r.TargetAmount),
		TargetConfirmation:          r.TargetConfirmation,
		OriginalWaitingTimeSeconds:  int64(r.OriginalWaitingTime / time.Second),
		RemainingWaitingTimeSeconds: int64(r.RemainingWaitingTime / time.Second),
		Status:                      string(r.Status),
		SuccessData:                 r.SuccessData,
		TimeoutData:                 r.TimeoutData,
		CallbackID:                  r.CallbackID,
		CreatedAt:                   r.CreatedAt,
	}
}

func sourceAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
