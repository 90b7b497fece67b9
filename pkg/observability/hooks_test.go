package observability

import (
	"testing"
	"time"
)

type recordingSolverHooks struct {
	NoopSolverHooks
	stages     []string
	violations int
}

func (r *recordingSolverHooks) OnStageStart(stage string) {
	r.stages = append(r.stages, stage)
}

func (r *recordingSolverHooks) OnBoundViolation(string, int, float64, float64, float64) {
	r.violations++
}

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	// Must not panic.
	Solver().OnStageStart("statics")
	Solver().OnStageComplete("statics", time.Millisecond, nil)
	Solver().OnBoundViolation("LAF", 1, 0, 1, 2)
	Cache().OnCacheHit("solve")
	Cache().OnCacheMiss("solve")
	Cache().OnCacheSet("solve", 128)
}

func TestSetSolverHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingSolverHooks{}
	SetSolverHooks(rec)

	Solver().OnStageStart("statics")
	Solver().OnStageStart("sampling")
	Solver().OnBoundViolation("TA", 2, 2.5, 2.75, 3.0)

	if len(rec.stages) != 2 {
		t.Errorf("recorded stages = %d, want 2", len(rec.stages))
	}
	if rec.violations != 1 {
		t.Errorf("recorded violations = %d, want 1", rec.violations)
	}
}

func TestSetNilHooksKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingSolverHooks{}
	SetSolverHooks(rec)
	SetSolverHooks(nil)

	Solver().OnStageStart("statics")
	if len(rec.stages) != 1 {
		t.Errorf("recorded stages = %d, want 1 (nil must not replace hooks)", len(rec.stages))
	}
}
