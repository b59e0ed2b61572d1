package task

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewTrimsText(t *testing.T) {
	tk, err := New("uid-1", "  Buy milk  ", nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if tk.Text != "Buy milk" {
		t.Fatalf("expected trimmed text, got %q", tk.Text)
	}
	if tk.Status != Pending {
		t.Fatalf("expected pending status, got %q", tk.Status)
	}
	if tk.Owner != "uid-1" {
		t.Fatalf("expected owner uid-1, got %q", tk.Owner)
	}
	if _, ok := tk.DueAt(); ok {
		t.Fatal("expected no due date")
	}
}

func TestNewRejectsEmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := New("uid-1", text, nil); err != ErrEmptyText {
			t.Fatalf("text %q: expected ErrEmptyText, got %v", text, err)
		}
	}
}

func TestStatusFlip(t *testing.T) {
	if Pending.Flip() != Completed {
		t.Fatal("pending should flip to completed")
	}
	if Completed.Flip() != Pending {
		t.Fatal("completed should flip to pending")
	}
}

func TestPersistedShape(t *testing.T) {
	due := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	tk, err := New("uid-1", "Buy milk", &due)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	tk.Created = Timestamp{Time: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}

	data, err := json.Marshal(tk)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if fields["text"] != "Buy milk" {
		t.Fatalf("text field: %v", fields["text"])
	}
	if fields["status"] != "pending" {
		t.Fatalf("status field: %v", fields["status"])
	}
	if fields["dueDate"] != "2026-03-14T09:00:00Z" {
		t.Fatalf("dueDate field: %v", fields["dueDate"])
	}
	if fields["userId"] != "uid-1" {
		t.Fatalf("userId field: %v", fields["userId"])
	}
	if _, present := fields["id"]; present {
		t.Fatal("id must not be persisted inside the document")
	}
}

func TestTimestampAbsent(t *testing.T) {
	tk, err := New("uid-1", "No deadline", nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	data, err := json.Marshal(tk)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, present := fields["dueDate"]; present {
		t.Fatal("absent due date must not serialize")
	}

	var back Task
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal task: %v", err)
	}
	if !back.Created.IsZero() {
		t.Fatalf("unassigned createdAt should round-trip as zero, got %v", back.Created)
	}
}

func TestParseDue(t *testing.T) {
	if got, err := ParseDue("  "); err != nil || got != nil {
		t.Fatalf("blank input: %v, %v", got, err)
	}

	got, err := ParseDue("2026-03-01T15:04:05Z")
	if err != nil || got == nil || !got.Equal(time.Date(2026, 3, 1, 15, 4, 5, 0, time.UTC)) {
		t.Fatalf("rfc3339: %v, %v", got, err)
	}

	got, err = ParseDue("2026-03-01")
	if err != nil || got == nil {
		t.Fatalf("date only: %v, %v", got, err)
	}
	if got.Hour() != 0 || got.Day() != 1 {
		t.Fatalf("date only should be local midnight, got %v", got)
	}

	if _, err := ParseDue("next tuesday"); err == nil {
		t.Fatal("expected error for unparseable input")
	}
}
