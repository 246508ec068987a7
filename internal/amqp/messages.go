package amqp

import (
	"encoding/json"
	"time"
)

// VolumeSyncMessage tells the export worker that a volume record was
// written. It carries only the id and version; the worker fetches the
// full row from the database before exporting.
type VolumeSyncMessage struct {
	ID        int64     `json:"id"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

func NewVolumeSyncMessage(id, version int64) *VolumeSyncMessage {
	return &VolumeSyncMessage{
		ID:        id,
		Version:   version,
		Timestamp: time.Now(),
	}
}

func (m *VolumeSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func VolumeSyncMessageFromJSON(data []byte) (*VolumeSyncMessage, error) {
	var msg VolumeSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
