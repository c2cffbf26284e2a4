package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/technotes/notes-api/internal/core/domain"
)

func TestOutcome(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{domain.ErrMissingFields, "validation"},
		{domain.ErrUserNotFound, "not_found"},
		{fmt.Errorf("wrapped: %w", domain.ErrUserHasNotes), "conflict"},
		{domain.ErrInvalidNoteData, "invalid_data"},
		{errors.New("socket closed"), "error"},
	}
	for _, tc := range cases {
		if got := Outcome(tc.err); got != tc.want {
			t.Errorf("Outcome(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestObserveMutation(t *testing.T) {
	before := testutil.ToFloat64(RecordMutationsTotal.WithLabelValues("note", "delete", "not_found"))
	ObserveMutation("note", "delete", domain.ErrNoteNotFound)
	after := testutil.ToFloat64(RecordMutationsTotal.WithLabelValues("note", "delete", "not_found"))

	if after-before != 1 {
		t.Fatalf("expected counter to grow by 1, got %v", after-before)
	}
}
