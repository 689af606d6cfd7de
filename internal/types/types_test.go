package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNormalizeDepositStatus(t *testing.T) {
	cases := map[string]PayStatus{
		"SUCCESS":  StatusCompleted,
		"success":  StatusCompleted,
		" SUCCESS": StatusCompleted,
		"FAILED":   StatusFailed,
		"REJECTED": StatusFailed,
		"PENDING":  StatusPending,
		"":         StatusPending,
		"WEIRD":    StatusPending,
	}
	for raw, want := range cases {
		if got := NormalizeDepositStatus(raw); got != want {
			t.Errorf("NormalizeDepositStatus(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestNormalizeWithdrawalStatus(t *testing.T) {
	cases := map[string]PayStatus{
		"Completed": StatusCompleted,
		"completed": StatusCompleted,
		"COMPLETED": StatusCompleted,
		"SUCCESS":   StatusCompleted,
		"FAILED":    StatusFailed,
		"Pending":   StatusPending,
		"unknown":   StatusPending,
	}
	for raw, want := range cases {
		if got := NormalizeWithdrawalStatus(raw); got != want {
			t.Errorf("NormalizeWithdrawalStatus(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestWithdrawalStatusDecodesString(t *testing.T) {
	var w Withdrawal
	if err := json.Unmarshal([]byte(`{"amount": 500, "status": "Completed"}`), &w); err != nil {
		t.Fatalf("Unexpected decode error: %v", err)
	}
	if w.Status.Canonical != StatusCompleted {
		t.Errorf("Expected completed, got %v", w.Status.Canonical)
	}
}

func TestWithdrawalStatusDecodesBool(t *testing.T) {
	var w Withdrawal
	if err := json.Unmarshal([]byte(`{"amount": 500, "status": true}`), &w); err != nil {
		t.Fatalf("Unexpected decode error: %v", err)
	}
	if w.Status.Canonical != StatusCompleted {
		t.Errorf("Expected true to mean completed, got %v", w.Status.Canonical)
	}

	if err := json.Unmarshal([]byte(`{"amount": 500, "status": false}`), &w); err != nil {
		t.Fatalf("Unexpected decode error: %v", err)
	}
	if w.Status.Canonical != StatusPending {
		t.Errorf("Expected false to mean pending, got %v", w.Status.Canonical)
	}
}

func TestWithdrawalStatusRejectsNumbers(t *testing.T) {
	var w Withdrawal
	if err := json.Unmarshal([]byte(`{"status": 7}`), &w); err == nil {
		t.Error("Expected a decode error for a numeric status")
	}
}

func TestWithdrawalStatusEncodesCanonical(t *testing.T) {
	b, err := json.Marshal(WithdrawalStatus{Canonical: StatusCompleted})
	if err != nil {
		t.Fatalf("Unexpected encode error: %v", err)
	}
	if string(b) != `"COMPLETED"` {
		t.Errorf("Expected \"COMPLETED\", got %s", b)
	}
}

func TestISODate(t *testing.T) {
	ts := time.Date(2025, 3, 9, 17, 45, 12, 0, time.UTC)
	if got := ISODate(ts); got != "2025-03-09" {
		t.Errorf("Expected 2025-03-09, got %s", got)
	}
}

func TestTruncateToDate(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	ts := time.Date(2025, 3, 9, 23, 59, 59, 123, loc)
	got := TruncateToDate(ts)

	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("Expected midnight, got %v", got)
	}
	if got.Location() != loc {
		t.Errorf("Expected original location to be kept, got %v", got.Location())
	}
	if got.Day() != 9 {
		t.Errorf("Expected calendar date preserved, got day %d", got.Day())
	}
}
