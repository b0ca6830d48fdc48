package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the store is unreachable but nothing is known to be lost.
	Degraded Status = "degraded"
	// Unhealthy indicates the master index cannot be served.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	master MasterLoader
	db     DBPinger
}

// New creates a Service. db is nil when the master index is file-backed.
func New(master MasterLoader, db DBPinger) *Service {
	return &Service{master: master, db: db}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			checks["database"] = CheckError
		} else {
			checks["database"] = CheckOK
		}
	}

	if _, err := s.master.Load(ctx); err != nil {
		checks["master"] = CheckError
	} else {
		checks["master"] = CheckOK
	}

	status := Healthy
	switch {
	case checks["master"] == CheckError:
		status = Unhealthy
	case checks["database"] == CheckError:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
