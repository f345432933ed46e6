package healthcheck

import (
	"context"
	"sort"
)

const (
	// StatusOK indicates check passed.
	StatusOK = "ok"
	// StatusWarn indicates check completed with warning.
	StatusWarn = "warn"
	// StatusError indicates check failed.
	StatusError = "error"
	// StatusUnknown indicates check result is not yet known.
	StatusUnknown = "unknown"
)

// CheckResult is one diagnostic item produced by a checker.
type CheckResult struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Status   string         `json:"status"`
	Summary  string         `json:"summary"`
	Detail   string         `json:"detail,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Checker evaluates one or more diagnostics for the running service.
type Checker interface {
	ListChecks(ctx context.Context) []CheckResult
}

// Report is the combined outcome of several checkers.
type Report struct {
	Status string        `json:"status"`
	Checks []CheckResult `json:"checks"`
}

// Run evaluates every checker and folds the results into a Report sorted by
// check id. The report status is the worst status seen; no checks is ok.
func Run(ctx context.Context, checkers ...Checker) Report {
	checks := make([]CheckResult, 0, len(checkers))
	for _, c := range checkers {
		if c == nil {
			continue
		}
		checks = append(checks, c.ListChecks(ctx)...)
	}
	sort.SliceStable(checks, func(i, j int) bool { return checks[i].ID < checks[j].ID })

	status := StatusOK
	for _, item := range checks {
		if severity(item.Status) > severity(status) {
			status = item.Status
		}
	}
	return Report{Status: status, Checks: checks}
}

func severity(status string) int {
	switch status {
	case StatusOK:
		return 0
	case StatusWarn:
		return 2
	case StatusError:
		return 3
	default:
		return 1
	}
}
