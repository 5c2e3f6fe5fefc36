package app

import (
	"fmt"
	"time"

	"go.trai.ch/pysync/internal/core/domain"
)

// Report summarizes a reconciliation.
type Report struct {
	DryRun bool
	// Audited is the number of locked packages checked.
	Audited     int
	Linked      []string
	Fetched     []string
	Reinstalled []string
	Removed     []string
	// OwnershipMismatch lists packages taken over from another installer.
	OwnershipMismatch []string
	// Clobbered lists packages whose files overwrote a conda package.
	Clobbered []string
	Elapsed   time.Duration
}

func newReport(plan *domain.InstallPlan, audited int, dryRun bool) *Report {
	r := &Report{
		DryRun:      dryRun,
		Audited:     audited,
		Reinstalled: plan.ReinstallNames(),
		Removed:     plan.RemoveNames(),
	}
	for _, a := range plan.LinkFromCache {
		r.Linked = append(r.Linked, a.Name.String())
	}
	for _, d := range plan.Fetch {
		r.Fetched = append(r.Fetched, d.DistName().String())
	}
	for _, name := range plan.OwnershipMismatch {
		r.OwnershipMismatch = append(r.OwnershipMismatch, name.String())
	}
	return r
}

// NothingToDo reports whether the environment already matched the lock.
func (r *Report) NothingToDo() bool {
	return len(r.Linked) == 0 && len(r.Fetched) == 0 && len(r.Reinstalled) == 0 && len(r.Removed) == 0
}

// FormatElapsed renders a duration the way progress messages show it:
// "1m 05s", "2.31s" or "412ms".
func FormatElapsed(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%dm %02ds", int(d/time.Minute), int((d%time.Minute)/time.Second))
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}
