package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"
)

func TestIsNotFound(t *testing.T) {
	t.Run("matches ErrNoRows", func(t *testing.T) {
		if !isNotFound(sql.ErrNoRows) {
			t.Fatal("expected true for sql.ErrNoRows")
		}
	})

	t.Run("matches wrapped ErrNoRows", func(t *testing.T) {
		if !isNotFound(fmt.Errorf("get team: %w", sql.ErrNoRows)) {
			t.Fatal("expected true for wrapped sql.ErrNoRows")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isNotFound(fmt.Errorf("pq: relation teams does not exist")) {
			t.Fatal("expected false for unrelated error")
		}
	})
}

func TestNullTimeToPtr(t *testing.T) {
	t.Run("returns nil for null", func(t *testing.T) {
		if got := nullTimeToPtr(sql.NullTime{}); got != nil {
			t.Fatalf("expected nil, got %v", got)
		}
	})

	t.Run("returns UTC value", func(t *testing.T) {
		loc := time.FixedZone("EST", -5*3600)
		input := time.Date(2026, 1, 5, 19, 0, 0, 0, loc)
		got := nullTimeToPtr(sql.NullTime{Time: input, Valid: true})
		if got == nil {
			t.Fatal("expected non-nil pointer")
		}
		if got.Location() != time.UTC {
			t.Fatalf("expected UTC, got %s", got.Location())
		}
		if !got.Equal(input) {
			t.Fatalf("expected %s, got %s", input, got)
		}
	})
}

func TestPtrToNullTime(t *testing.T) {
	if got := ptrToNullTime(nil); got.Valid {
		t.Fatal("expected invalid NullTime for nil pointer")
	}

	input := time.Date(1997, 1, 13, 0, 0, 0, 0, time.UTC)
	got := ptrToNullTime(&input)
	if !got.Valid || !got.Time.Equal(input) {
		t.Fatalf("unexpected NullTime: %+v", got)
	}
}

func TestTeamIDToNull(t *testing.T) {
	if got := teamIDToNull(0); got.Valid {
		t.Fatal("expected invalid NullInt64 for unassigned team")
	}
	if got := teamIDToNull(10); !got.Valid || got.Int64 != 10 {
		t.Fatalf("unexpected NullInt64: %+v", got)
	}
}

func TestNullString(t *testing.T) {
	if got := nullString(""); got.Valid {
		t.Fatal("expected invalid NullString for empty value")
	}
	if got := nullString("upstream returned no data"); !got.Valid || got.String != "upstream returned no data" {
		t.Fatalf("unexpected NullString: %+v", got)
	}
}
