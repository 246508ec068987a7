package services

import (
	"context"
	"log/slog"
	"time"

	"waterlog/internal/core"
)

// quickAmounts mirrors the volumes the original bot offered on its
// reply keyboard (0.1, 0.2, 0.5 and 1.0 litres).
var quickAmounts = []core.Quantity{
	{Millilitres: 100},
	{Millilitres: 200},
	{Millilitres: 500},
	{Millilitres: 1000},
}

// DialogHandler turns one inbound message into one response payload.
// It keeps no per-user state between messages: every call classifies,
// acts and returns, so concurrent messages from the same user are
// allowed to interleave (no per-user serialization by design).
type DialogHandler struct {
	classifier core.Classifier
	volumes    *VolumeService
	aggregator *Aggregator
	clock      func() time.Time
}

// NewDialogHandler wires the handler. A nil clock means time.Now; tests
// inject a fixed clock for deterministic windows.
func NewDialogHandler(classifier core.Classifier, volumes *VolumeService, aggregator *Aggregator, clock func() time.Time) *DialogHandler {
	if clock == nil {
		clock = time.Now
	}
	return &DialogHandler{
		classifier: classifier,
		volumes:    volumes,
		aggregator: aggregator,
		clock:      clock,
	}
}

// HandleMessage processes one inbound message. Persistence errors are
// terminal for the message only: they are logged in full and surfaced
// to the user as a generic error response, and the handler is
// immediately ready for the next message.
func (h *DialogHandler) HandleMessage(ctx context.Context, userID int64, text string) core.Response {
	intent := h.classifier.Classify(text)

	switch intent.Kind {
	case core.IntentShowHelp:
		return core.Response{
			Kind:         core.ResponseHelp,
			QuickAmounts: quickAmounts,
			TodayKeyword: h.classifier.TodayKeyword(),
		}

	case core.IntentShowToday:
		return h.handleShowToday(ctx, userID)

	case core.IntentRecordAmount:
		return h.handleRecordAmount(ctx, userID, intent.RawAmount)

	default:
		return core.Response{Kind: core.ResponseNone}
	}
}

func (h *DialogHandler) handleShowToday(ctx context.Context, userID int64) core.Response {
	total, err := h.aggregator.SumToday(ctx, userID, h.clock())
	if err != nil {
		slog.ErrorContext(ctx, "Failed to aggregate today's volumes",
			"user_id", userID, "error", err)
		return core.Response{Kind: core.ResponseError}
	}

	// A successful zero is "no data yet", distinct from a failure.
	if total.Millilitres == 0 {
		return core.Response{Kind: core.ResponseNoDataToday}
	}

	return core.Response{Kind: core.ResponseTodayTotal, Total: total, HasTotal: true}
}

func (h *DialogHandler) handleRecordAmount(ctx context.Context, userID int64, raw string) core.Response {
	amount, err := core.ParseMillilitres(raw)
	if err != nil {
		// Validation failure: nothing reaches persistence.
		slog.WarnContext(ctx, "Rejected malformed amount",
			"user_id", userID, "raw", raw, "error", err)
		return core.Response{Kind: core.ResponseError}
	}

	now := h.clock()
	if _, err := h.volumes.Record(ctx, userID, amount, now); err != nil {
		slog.ErrorContext(ctx, "Failed to record volume",
			"user_id", userID, "amount_ml", amount.Millilitres, "error", err)
		return core.Response{Kind: core.ResponseError}
	}

	resp := core.Response{Kind: core.ResponseRecorded, Recorded: amount}

	total, err := h.aggregator.SumToday(ctx, userID, h.clock())
	if err != nil {
		// The insert stands; only the running total is omitted.
		slog.ErrorContext(ctx, "Failed to aggregate after recording",
			"user_id", userID, "error", err)
		return resp
	}

	resp.Total = total
	resp.HasTotal = true
	return resp
}
