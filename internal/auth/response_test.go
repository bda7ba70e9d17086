package auth

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewErrorResponse(t *testing.T) {
	before := time.Now().UnixMilli()
	resp := NewErrorResponse(CodeUserNotFound, "user not found with subject: x")
	after := time.Now().UnixMilli()

	if resp.ErrorCode != CodeUserNotFound {
		t.Errorf("ErrorCode = %q, want %q", resp.ErrorCode, CodeUserNotFound)
	}
	if resp.Message != "user not found with subject: x" {
		t.Errorf("Message = %q", resp.Message)
	}
	if resp.Timestamp < before || resp.Timestamp > after {
		t.Errorf("Timestamp = %d, want within [%d, %d]", resp.Timestamp, before, after)
	}
}

func TestNewErrorResponseTimestampMonotonic(t *testing.T) {
	first := NewErrorResponse(CodeInternal, "a")
	second := NewErrorResponse(CodeInternal, "b")
	if second.Timestamp < first.Timestamp {
		t.Errorf("timestamps went backwards: %d then %d", first.Timestamp, second.Timestamp)
	}
}

func TestErrorResponseJSONKeys(t *testing.T) {
	raw, err := json.Marshal(NewErrorResponse(CodeNotAuthenticated, "user not authenticated"))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	for _, key := range []string{"errorCode", "message", "timestamp"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing JSON key %q in %s", key, raw)
		}
	}
	if len(decoded) != 3 {
		t.Errorf("got %d JSON keys, want 3: %s", len(decoded), raw)
	}
}
