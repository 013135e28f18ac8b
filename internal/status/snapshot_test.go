// internal/status/snapshot_test.go
package status

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestSnapshot_JSONOmitsUnsetAttempt(t *testing.T) {
	b, err := json.Marshal(Snapshot{Phase: PhaseIdle, Health: HealthUnknown})
	if err != nil {
		t.Fatalf("marshal err=%v", err)
	}
	if strings.Contains(string(b), "last_attempt_at") {
		t.Fatalf("unset attempt time leaked: %s", b)
	}

	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	b, err = json.Marshal(Snapshot{LastAttemptAt: at})
	if err != nil {
		t.Fatalf("marshal err=%v", err)
	}
	if !strings.Contains(string(b), `"last_attempt_at":"2024-05-06T07:08:09Z"`) {
		t.Fatalf("attempt time missing: %s", b)
	}
}
