package sqlite

import (
	"path/filepath"
	"testing"

	"finance-tracker/src/db/storetest"
)

func newTestStore(t *testing.T) storetest.Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore(t *testing.T) {
	storetest.Run(t, newTestStore)
}

func TestStoreFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finance.db")
	storetest.Run(t, func(t *testing.T) storetest.Store {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		t.Cleanup(func() {
			s.db.Exec(`DELETE FROM users`)
			s.Close()
		})
		return s
	})
}

func TestTimestampScan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		wantErr bool
	}{
		{"sqlite default", "2024-01-05 12:30:00", false},
		{"bytes", []byte("2024-01-05 12:30:00"), false},
		{"rfc3339", "2024-01-05T12:30:00Z", false},
		{"garbage", "yesterday", true},
		{"wrong type", 42, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts timestamp
			err := ts.Scan(tt.src)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Scan(%v) error = %v, wantErr %v", tt.src, err, tt.wantErr)
			}
		})
	}
}
