package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/technotes/notes-api/internal/core/domain"
	"github.com/technotes/notes-api/internal/core/ports"
)

func TestNoteHandler_List(t *testing.T) {
	stub := &stubNoteService{
		listFn: func(ctx context.Context) ([]domain.NoteView, error) {
			return []domain.NoteView{
				{Note: domain.Note{ID: "n1", Owner: "u1", Title: "Groceries", Text: "milk"}, Username: "alice"},
				{Note: domain.Note{ID: "n2", Owner: "gone", Title: "Chores", Text: "dishes", Completed: true}, Username: domain.UnknownUsername},
			}, nil
		},
	}
	c, rec := newJSONContext(http.MethodGet, "/notes", "")

	if err := NewNoteHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(resp))
	}
	if resp[0]["_id"] != "n1" || resp[0]["user"] != "u1" || resp[0]["username"] != "alice" {
		t.Fatalf("unexpected first note: %v", resp[0])
	}
	if resp[1]["username"] != "Unknown" || resp[1]["completed"] != true {
		t.Fatalf("unexpected second note: %v", resp[1])
	}
}

func TestNoteHandler_List_NoNotes(t *testing.T) {
	stub := &stubNoteService{
		listFn: func(ctx context.Context) ([]domain.NoteView, error) { return nil, domain.ErrNoNotes },
	}
	c, _ := newJSONContext(http.MethodGet, "/notes", "")

	if err := NewNoteHandler(stub).List(c); !errors.Is(err, domain.ErrNoNotes) {
		t.Fatalf("expected ErrNoNotes, got %v", err)
	}
}

func TestNoteHandler_Create(t *testing.T) {
	stub := &stubNoteService{
		createFn: func(ctx context.Context, in ports.CreateNoteInput) (string, error) {
			if in.Owner != "u1" || in.Title != "Groceries" || in.Text != "milk" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return "New note created", nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/notes", `{"user":"u1","title":"Groceries","text":"milk"}`)

	if err := NewNoteHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"message":"New note created"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestNoteHandler_Update_BareString(t *testing.T) {
	stub := &stubNoteService{
		updateFn: func(ctx context.Context, in ports.UpdateNoteInput) (string, error) {
			if in.Completed == nil || !*in.Completed || in.Owner != "u1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return "'Groceries' updated", nil
		},
	}
	c, rec := newJSONContext(http.MethodPatch, "/notes", `{"id":"n1","user":"u1","title":"Groceries","text":"milk","completed":true}`)

	if err := NewNoteHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var got string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("expected a JSON string, got %s", rec.Body.String())
	}
	if got != "'Groceries' updated" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestNoteHandler_Update_RequiresCompleted(t *testing.T) {
	stub := &stubNoteService{
		updateFn: func(ctx context.Context, in ports.UpdateNoteInput) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	c, _ := newJSONContext(http.MethodPatch, "/notes", `{"id":"n1","user":"u1","title":"Groceries","text":"milk"}`)

	if err := NewNoteHandler(stub).Update(c); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestNoteHandler_Delete_BareString(t *testing.T) {
	stub := &stubNoteService{
		deleteFn: func(ctx context.Context, id string) (string, error) {
			return "Note 'Groceries' with ID " + id + " deleted", nil
		},
	}
	c, rec := newJSONContext(http.MethodDelete, "/notes", `{"id":"n1"}`)

	if err := NewNoteHandler(stub).Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var got string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil || got != "Note 'Groceries' with ID n1 deleted" {
		t.Fatalf("unexpected body %s (%v)", rec.Body.String(), err)
	}
}
