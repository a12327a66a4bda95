package postgres

import (
	"encoding/json"
	"time"
)

func marshalJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

func unmarshalJSON(data []byte, v interface{}) {
	if len(data) == 0 {
		return
	}
	_ = json.Unmarshal(data, v)
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

// Analytics reads the full task history of a goal, so the ceiling is higher
// than a typical page size.
func clampLimit(limit int) int {
	if limit <= 0 || limit > 1000 {
		return 1000
	}
	return limit
}
