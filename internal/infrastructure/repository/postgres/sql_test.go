package postgres

import (
	"database/sql"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	t.Run("matches ErrNoRows", func(t *testing.T) {
		if !isNotFound(fmt.Errorf("query contest: %w", sql.ErrNoRows)) {
			t.Fatalf("expected true for wrapped sql.ErrNoRows")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isNotFound(fmt.Errorf("pq: relation contests does not exist")) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestNullIntToRank(t *testing.T) {
	t.Run("converts valid rank", func(t *testing.T) {
		rank := nullIntToRank(sql.NullInt64{Int64: 3, Valid: true})
		if rank == nil || *rank != 3 {
			t.Fatalf("expected rank 3, got %v", rank)
		}
	})

	t.Run("returns nil for null", func(t *testing.T) {
		if rank := nullIntToRank(sql.NullInt64{}); rank != nil {
			t.Fatalf("expected nil rank, got %d", *rank)
		}
	})
}

func TestNullString(t *testing.T) {
	if got := nullString("cs_test_1"); !got.Valid || got.String != "cs_test_1" {
		t.Fatalf("unexpected null string for value: %+v", got)
	}
	if got := nullString(""); got.Valid {
		t.Fatalf("expected invalid null string for empty value: %+v", got)
	}
}
