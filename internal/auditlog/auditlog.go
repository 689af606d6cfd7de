// Package auditlog keeps a daily append-only JSONL trail of commission
// payout attempts, separate from the structured service logs. Payouts move
// money, so the trail survives independent of log shipping.
package auditlog

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var mu sync.Mutex

// PayoutEntry is one payout attempt as written to the trail.
type PayoutEntry struct {
	Time      string         `json:"time"`
	Email     string         `json:"email"`
	AccountNo int64          `json:"accountNo"`
	AmountUSD float64        `json:"amountUsd"`
	Success   bool           `json:"success"`
	OrderID   string         `json:"orderId,omitempty"`
	Message   string         `json:"message,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

func logDir() string {
	if v := os.Getenv("PAYOUT_LOG_DIR"); v != "" {
		return v
	}
	return "logs"
}

// AppendPayout records one payout attempt in today's file. Filenames roll
// on UTC days.
func AppendPayout(e PayoutEntry) error {
	mu.Lock()
	defer mu.Unlock()

	now := time.Now().UTC()
	e.Time = now.Format("2006-01-02 15:04:05")

	path := filepath.Join(logDir(), "payouts", now.Format("2006-01-02")+".txt")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	line, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f, string(line))
	return err
}

// CompressOlder gzips trail files past the retention window. Individual
// file failures are skipped; a partially compressed trail beats none.
func CompressOlder(retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	return filepath.WalkDir(logDir(), func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".txt" {
			return nil
		}
		info, err := d.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			return nil
		}
		_ = compressFile(path)
		return nil
	})
}

func compressFile(path string) error {
	gzPath := path + ".gz"
	if _, err := os.Stat(gzPath); err == nil {
		// Compressed copy already exists from an earlier run.
		return os.Remove(path)
	}

	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(gzPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	gw := gzip.NewWriter(out)
	_, copyErr := io.Copy(gw, in)
	if err := gw.Close(); copyErr == nil {
		copyErr = err
	}
	if err := out.Close(); copyErr == nil {
		copyErr = err
	}
	if copyErr != nil {
		return copyErr
	}
	return os.Remove(path)
}
