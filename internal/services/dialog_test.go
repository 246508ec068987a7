package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"waterlog/internal/core"
)

func newTestHandler(store *fakeStore, pub SyncPublisher, now time.Time) *DialogHandler {
	volumes := NewVolumeService(store, pub)
	agg := NewAggregator(store, time.UTC)
	return NewDialogHandler(core.NewClassifier(""), volumes, agg, func() time.Time { return now })
}

func TestHandleMessageHelp(t *testing.T) {
	h := newTestHandler(&fakeStore{}, nil, time.Now())

	resp := h.HandleMessage(context.Background(), 1, "/start")
	if resp.Kind != core.ResponseHelp {
		t.Fatalf("kind = %v, want help", resp.Kind)
	}
	if len(resp.QuickAmounts) == 0 {
		t.Error("help response should carry quick amounts for the keyboard")
	}
	if resp.TodayKeyword != core.DefaultTodayKeyword {
		t.Errorf("TodayKeyword = %q, want %q", resp.TodayKeyword, core.DefaultTodayKeyword)
	}
}

func TestHandleMessageRecordThenToday(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	store := &fakeStore{}
	h := newTestHandler(store, nil, now)
	ctx := context.Background()

	resp := h.HandleMessage(ctx, 1, "200")
	if resp.Kind != core.ResponseRecorded {
		t.Fatalf("kind = %v, want recorded", resp.Kind)
	}
	if resp.Recorded.Millilitres != 200 {
		t.Errorf("recorded = %d, want 200", resp.Recorded.Millilitres)
	}
	if !resp.HasTotal || resp.Total.Millilitres != 200 {
		t.Errorf("total = %+v (has=%v), want 200", resp.Total, resp.HasTotal)
	}

	resp = h.HandleMessage(ctx, 1, "Сегодня")
	if resp.Kind != core.ResponseTodayTotal {
		t.Fatalf("kind = %v, want today_total", resp.Kind)
	}
	if resp.Total.Millilitres < 200 {
		t.Errorf("total = %d, want >= 200", resp.Total.Millilitres)
	}

	// A different user in the same window sees no data.
	resp = h.HandleMessage(ctx, 2, "Сегодня")
	if resp.Kind != core.ResponseNoDataToday {
		t.Errorf("other user kind = %v, want no_data_today", resp.Kind)
	}
}

func TestHandleMessageTodayNoData(t *testing.T) {
	h := newTestHandler(&fakeStore{}, nil, time.Now())

	resp := h.HandleMessage(context.Background(), 1, "Сегодня")
	if resp.Kind != core.ResponseNoDataToday {
		t.Errorf("kind = %v, want no_data_today", resp.Kind)
	}
}

func TestHandleMessageTodayStoreError(t *testing.T) {
	store := &fakeStore{sumErr: errors.New("down")}
	h := newTestHandler(store, nil, time.Now())

	resp := h.HandleMessage(context.Background(), 1, "Сегодня")
	if resp.Kind != core.ResponseError {
		t.Errorf("kind = %v, want error", resp.Kind)
	}
}

func TestHandleMessageInvalidAmountWritesNothing(t *testing.T) {
	store := &fakeStore{}
	h := newTestHandler(store, nil, time.Now())

	// "0000" passes the syntactic 2-4 digit filter but fails semantic
	// validation; no record may be created.
	resp := h.HandleMessage(context.Background(), 1, "0000")
	if resp.Kind != core.ResponseError {
		t.Fatalf("kind = %v, want error", resp.Kind)
	}
	if len(store.rows) != 0 {
		t.Errorf("store has %d rows, want 0", len(store.rows))
	}
}

func TestHandleMessageInsertError(t *testing.T) {
	store := &fakeStore{insertErr: errors.New("write rejected")}
	h := newTestHandler(store, nil, time.Now())

	resp := h.HandleMessage(context.Background(), 1, "200")
	if resp.Kind != core.ResponseError {
		t.Errorf("kind = %v, want error", resp.Kind)
	}
}

func TestHandleMessageRecordedSurvivesAggregationError(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	store := &fakeStore{}
	h := newTestHandler(store, nil, now)
	ctx := context.Background()

	// Fail only the follow-up aggregation, after the insert succeeded.
	store.sumErr = errors.New("read side down")

	resp := h.HandleMessage(ctx, 1, "300")
	if resp.Kind != core.ResponseRecorded {
		t.Fatalf("kind = %v, want recorded (insert is not rolled back)", resp.Kind)
	}
	if resp.HasTotal {
		t.Error("running total should be omitted when aggregation fails")
	}
	if len(store.rows) != 1 {
		t.Errorf("store has %d rows, want 1", len(store.rows))
	}
}

func TestHandleMessageUnrecognized(t *testing.T) {
	h := newTestHandler(&fakeStore{}, nil, time.Now())

	resp := h.HandleMessage(context.Background(), 1, "what is this")
	if resp.Kind != core.ResponseNone {
		t.Errorf("kind = %v, want none", resp.Kind)
	}
}

func TestRecordPublishesSyncMessage(t *testing.T) {
	store := &fakeStore{}
	pub := &fakePublisher{}
	h := newTestHandler(store, pub, time.Now())

	resp := h.HandleMessage(context.Background(), 1, "250")
	if resp.Kind != core.ResponseRecorded {
		t.Fatalf("kind = %v, want recorded", resp.Kind)
	}
	if len(pub.published) != 1 {
		t.Errorf("published %d sync messages, want 1", len(pub.published))
	}
}

func TestRecordPublishFailureDoesNotFailRequest(t *testing.T) {
	store := &fakeStore{}
	pub := &fakePublisher{publishErr: errors.New("broker down")}
	h := newTestHandler(store, pub, time.Now())

	resp := h.HandleMessage(context.Background(), 1, "250")
	if resp.Kind != core.ResponseRecorded {
		t.Fatalf("kind = %v, want recorded despite publish failure", resp.Kind)
	}
	if len(store.rows) != 1 {
		t.Errorf("store has %d rows, want 1", len(store.rows))
	}
}
