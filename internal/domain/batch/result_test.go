package batch

import (
	"errors"
	"testing"
)

func TestNewOK(t *testing.T) {
	r := NewOK("page-1")
	if r.ID() != "page-1" {
		t.Errorf("ID() = %q", r.ID())
	}
	if r.Status() != StatusOK {
		t.Errorf("Status() = %q, want %q", r.Status(), StatusOK)
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v, want nil", r.Err())
	}
}

func TestNewWarning(t *testing.T) {
	err := errors.New("bad polygon")
	r := NewWarning("page-2", err)
	if r.Status() != StatusWarning {
		t.Errorf("Status() = %q, want %q", r.Status(), StatusWarning)
	}
	if !errors.Is(r.Err(), err) {
		t.Errorf("Err() = %v, want %v", r.Err(), err)
	}
}

func TestNewError(t *testing.T) {
	err := errors.New("unparseable")
	r := NewError("12.json", err)
	if r.ID() != "12.json" {
		t.Errorf("ID() = %q", r.ID())
	}
	if r.Status() != StatusError {
		t.Errorf("Status() = %q, want %q", r.Status(), StatusError)
	}
	if !errors.Is(r.Err(), err) {
		t.Errorf("Err() = %v, want %v", r.Err(), err)
	}
}

func TestSummarizeAndFailed(t *testing.T) {
	boom := errors.New("boom")
	results := []Result{
		NewOK("a"),
		NewWarning("b", boom),
		NewError("c", boom),
		NewOK("d"),
		NewError("e", boom),
	}

	s := Summarize(results)
	if s.OK != 2 || s.Warnings != 1 || s.Errors != 2 {
		t.Errorf("Summarize = %+v", s)
	}

	failed := Failed(results)
	if len(failed) != 2 || failed[0].ID() != "c" || failed[1].ID() != "e" {
		t.Errorf("Failed = %+v", failed)
	}
	if Failed(nil) != nil {
		t.Error("Failed(nil) should be nil")
	}
}
