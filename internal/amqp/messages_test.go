package amqp

import (
	"testing"
	"time"
)

func TestNewVolumeSyncMessage(t *testing.T) {
	before := time.Now()
	msg := NewVolumeSyncMessage(42, 1)

	if msg.ID != 42 || msg.Version != 1 {
		t.Errorf("message = %+v, want id=42 version=1", msg)
	}
	if msg.Timestamp.Before(before) {
		t.Error("timestamp should be set at creation time")
	}
}

func TestVolumeSyncMessageRoundTrip(t *testing.T) {
	msg := NewVolumeSyncMessage(7, 2)

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := VolumeSyncMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.ID != msg.ID || got.Version != msg.Version {
		t.Errorf("roundtrip = %+v, want %+v", got, msg)
	}
}

func TestVolumeSyncMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := VolumeSyncMessageFromJSON([]byte("not json")); err == nil {
		t.Error("expected error for malformed payload")
	}
}
