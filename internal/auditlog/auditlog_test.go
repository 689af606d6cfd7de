package auditlog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAppendPayout(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PAYOUT_LOG_DIR", dir)

	err := AppendPayout(PayoutEntry{
		Email:     "partner@x.com",
		AccountNo: 1001,
		AmountUSD: 100,
		Success:   true,
		OrderID:   "ORD-991",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	day := time.Now().UTC().Format("2006-01-02")
	b, err := os.ReadFile(filepath.Join(dir, "payouts", day+".txt"))
	if err != nil {
		t.Fatalf("Expected today's trail file: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(lines))
	}

	var entry PayoutEntry
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Unparseable entry: %v", err)
	}
	if entry.Email != "partner@x.com" || entry.OrderID != "ORD-991" || !entry.Success {
		t.Errorf("Unexpected entry: %+v", entry)
	}
	if entry.Time == "" {
		t.Error("Expected the entry to be timestamped")
	}
}

func TestAppendPayoutAppends(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PAYOUT_LOG_DIR", dir)

	for i := 0; i < 3; i++ {
		if err := AppendPayout(PayoutEntry{Email: "partner@x.com", AmountUSD: float64(i)}); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	day := time.Now().UTC().Format("2006-01-02")
	b, err := os.ReadFile(filepath.Join(dir, "payouts", day+".txt"))
	if err != nil {
		t.Fatalf("Expected today's trail file: %v", err)
	}
	if got := len(strings.Split(strings.TrimSpace(string(b)), "\n")); got != 3 {
		t.Errorf("Expected 3 entries, got %d", got)
	}
}

func TestCompressOlderNoRetention(t *testing.T) {
	t.Setenv("PAYOUT_LOG_DIR", t.TempDir())
	if err := CompressOlder(0); err != nil {
		t.Errorf("Expected retention 0 to be a no-op, got %v", err)
	}
}
