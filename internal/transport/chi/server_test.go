package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/chapterdex/internal/domain"
	"github.com/kailas-cloud/chapterdex/internal/domain/chapter"
	"github.com/kailas-cloud/chapterdex/internal/domain/master"
	healthuc "github.com/kailas-cloud/chapterdex/internal/usecase/health"
	lookupuc "github.com/kailas-cloud/chapterdex/internal/usecase/lookup"
)

type mockMaster struct {
	idx *master.Index
	err error
}

func (m *mockMaster) Load(_ context.Context) (*master.Index, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.idx, nil
}

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func newTestRouter(m *mockMaster, db healthuc.DBPinger, apiKeys ...string) http.Handler {
	srv := NewServer(lookupuc.New(m), healthuc.New(m, db), zap.NewNop())
	return srv.Router(apiKeys)
}

func fixtureMaster() *master.Index {
	idx := master.New()
	idx.Merge("2-0", chapter.WordMap{"HELLO": {1}})
	idx.Merge("2-5", chapter.WordMap{"HELLO": {1, 4}})
	return idx
}

func do(h http.Handler, path string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGetWord(t *testing.T) {
	h := newTestRouter(&mockMaster{idx: fixtureMaster()}, nil)

	rr := do(h, "/words/hello")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
	var hit lookupuc.Hit
	if err := json.NewDecoder(rr.Body).Decode(&hit); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if hit.Word != "HELLO" || len(hit.Locations) != 2 {
		t.Errorf("unexpected hit %+v", hit)
	}
	if got := hit.Locations["2-5"]; len(got) != 2 || got[1] != 4 {
		t.Errorf("2-5 pages = %v", got)
	}
}

func TestGetWord_NotFound(t *testing.T) {
	h := newTestRouter(&mockMaster{idx: fixtureMaster()}, nil)

	rr := do(h, "/words/absent")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	var resp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != ErrorCodeWordNotFound {
		t.Errorf("code = %s, want %s", resp.Code, ErrorCodeWordNotFound)
	}
}

func TestGetWord_MasterUnreadable(t *testing.T) {
	h := newTestRouter(&mockMaster{err: domain.ErrMasterUnreadable}, nil)

	rr := do(h, "/words/hello")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}
}

func TestGetWord_InternalErrorHidesDetails(t *testing.T) {
	h := newTestRouter(&mockMaster{err: errors.New("dial tcp 10.0.0.1:6379: refused")}, nil)

	rr := do(h, "/words/hello")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	var resp ErrorResponse
	_ = json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Message != "internal error" {
		t.Errorf("message leaked internals: %q", resp.Message)
	}
}

func TestGetStats(t *testing.T) {
	h := newTestRouter(&mockMaster{idx: fixtureMaster()}, nil)

	rr := do(h, "/stats")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var st master.Stats
	if err := json.NewDecoder(rr.Body).Decode(&st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.Words != 1 || len(st.Chapters) != 2 {
		t.Errorf("unexpected stats %+v", st)
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name   string
		master *mockMaster
		db     healthuc.DBPinger
		code   int
		status string
	}{
		{"file backed", &mockMaster{idx: master.New()}, nil, http.StatusOK, "ok"},
		{"store down", &mockMaster{idx: master.New()}, &mockPinger{err: errors.New("down")},
			http.StatusOK, "degraded"},
		{"master unreadable", &mockMaster{err: domain.ErrMasterUnreadable}, &mockPinger{},
			http.StatusServiceUnavailable, "error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestRouter(tc.master, tc.db)
			rr := do(h, "/health")
			if rr.Code != tc.code {
				t.Fatalf("status = %d, want %d", rr.Code, tc.code)
			}
			var resp HealthResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Status != tc.status {
				t.Errorf("status = %q, want %q", resp.Status, tc.status)
			}
		})
	}
}

func TestRouter_AuthAppliesToLookups(t *testing.T) {
	h := newTestRouter(&mockMaster{idx: fixtureMaster()}, nil, "secret")

	if rr := do(h, "/words/hello"); rr.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rr.Code)
	}
	if rr := do(h, "/words/hello", "Authorization", "Bearer secret"); rr.Code != http.StatusOK {
		t.Errorf("valid token: status = %d, want 200", rr.Code)
	}
	if rr := do(h, "/health"); rr.Code != http.StatusOK {
		t.Errorf("health must stay open: status = %d", rr.Code)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	h := newTestRouter(&mockMaster{idx: fixtureMaster()}, nil)
	rr := do(h, "/collections")
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestJSONRecoverer(t *testing.T) {
	h := JSONRecoverer(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := do(h, "/")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	var resp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != ErrorCodeInternalError {
		t.Errorf("code = %s", resp.Code)
	}
}
