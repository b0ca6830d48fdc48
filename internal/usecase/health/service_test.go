package health

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/chapterdex/internal/domain"
	"github.com/kailas-cloud/chapterdex/internal/domain/master"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockMaster struct {
	err error
}

func (m *mockMaster) Load(_ context.Context) (*master.Index, error) {
	if m.err != nil {
		return nil, m.err
	}
	return master.New(), nil
}

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	r := New(&mockMaster{}, &mockDBPinger{}).Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["database"] != CheckOK || r.Checks["master"] != CheckOK {
		t.Errorf("unexpected checks %v", r.Checks)
	}
}

func TestCheck_FileBacked(t *testing.T) {
	r := New(&mockMaster{}, nil).Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["database"]; ok {
		t.Error("database check should be absent without a store")
	}
}

func TestCheck_CorruptMaster(t *testing.T) {
	r := New(&mockMaster{err: domain.ErrMasterUnreadable}, nil).Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks["master"] != CheckError {
		t.Errorf("expected master %q, got %q", CheckError, r.Checks["master"])
	}
}

func TestCheck_DBError(t *testing.T) {
	r := New(&mockMaster{}, &mockDBPinger{err: errors.New("conn refused")}).Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Errorf("expected database %q, got %q", CheckError, r.Checks["database"])
	}
}

func TestCheck_BothFail(t *testing.T) {
	r := New(
		&mockMaster{err: errors.New("timeout")},
		&mockDBPinger{err: errors.New("db down")},
	).Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
}
