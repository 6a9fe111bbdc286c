package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockEmbeddingChecker struct {
	err error
}

func (m *mockEmbeddingChecker) HealthCheck(_ context.Context) error { return m.err }

type mockIndexChecker struct {
	ready bool
	err   error
}

func (m *mockIndexChecker) IndexReady(_ context.Context, _ string) (bool, error) {
	return m.ready, m.err
}

// --- Tests ---

func TestCheckAllHealthy(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockEmbeddingChecker{}, &mockIndexChecker{ready: true}, "assessments")
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("status = %q, want %q", r.Status, Healthy)
	}
	for _, check := range []string{"database", "embedding", "index"} {
		if r.Checks[check] != CheckOK {
			t.Errorf("check %q = %q, want %q", check, r.Checks[check], CheckOK)
		}
	}
}

func TestCheckDatabaseDown(t *testing.T) {
	svc := New(&mockDBPinger{err: errors.New("refused")}, nil, nil, "assessments")
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("status = %q, want %q", r.Status, Degraded)
	}
	if r.Checks["database"] != CheckError {
		t.Errorf("database = %q, want %q", r.Checks["database"], CheckError)
	}
}

func TestCheckIndexMissing(t *testing.T) {
	svc := New(&mockDBPinger{}, nil, &mockIndexChecker{ready: false}, "assessments")
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("status = %q, want %q", r.Status, Degraded)
	}
	if r.Checks["index"] != CheckMissing {
		t.Errorf("index = %q, want %q", r.Checks["index"], CheckMissing)
	}
}

func TestCheckNilOptionalComponents(t *testing.T) {
	svc := New(&mockDBPinger{}, nil, nil, "assessments")
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("status = %q, want %q", r.Status, Healthy)
	}
	if _, ok := r.Checks["embedding"]; ok {
		t.Error("nil embedding checker should not produce a check")
	}
	if _, ok := r.Checks["index"]; ok {
		t.Error("nil index checker should not produce a check")
	}
}
