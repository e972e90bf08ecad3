package flow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/tripwise/internal/domain"
)

// DraftStore is the durable home of the draft. Load returns (nil, nil) when
// nothing has been stored yet.
type DraftStore interface {
	Load(ctx context.Context) (*domain.PlanDraft, error)
	Save(ctx context.Context, d *domain.PlanDraft) error
}

// Outcome reports the result of an engine operation. Refusals are values,
// never errors: Reason says why the operation did not happen, Hint carries a
// non-blocking advisory, and Warning is set once per session when the store
// stops accepting writes.
type Outcome struct {
	OK      bool
	Reason  string
	Hint    string
	Warning string
	Step    domain.StepID
}

// VisitToken identifies one entry into a step. Results of asynchronous work
// started during a visit are applied only while the token is current.
type VisitToken struct {
	Step domain.StepID
	Seq  uint64
}

// Engine drives one planning session: it owns the in-memory draft, the
// current step, and the auto-save to the store. It is single-writer and not
// safe for concurrent use.
type Engine struct {
	steps    []domain.Step
	store    DraftStore
	observer UseCaseObserver
	now      func() time.Time

	draft      domain.PlanDraft
	current    int
	visitSeq   uint64
	saveWarned bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source used for date validation and stamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithObserver routes engine events to o.
func WithObserver(o UseCaseObserver) Option {
	return func(e *Engine) {
		e.observer = useCaseObserverOrNoop(o)
	}
}

// NewEngine creates an engine positioned on the first step with an empty
// draft. Call Restore to resume a stored draft.
func NewEngine(store DraftStore, opts ...Option) *Engine {
	e := &Engine{
		steps:    domain.Steps(),
		store:    store,
		observer: NoopUseCaseObserver{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.visitSeq = 1
	return e
}

// ── accessors ────────────────────────────────────────────────────────────────

// Draft returns a copy of the in-memory draft.
func (e *Engine) Draft() domain.PlanDraft {
	return e.draft.Clone()
}

// Steps returns the ordered step table.
func (e *Engine) Steps() []domain.Step {
	out := make([]domain.Step, len(e.steps))
	copy(out, e.steps)
	return out
}

// Current returns the step the session is on.
func (e *Engine) Current() domain.Step {
	return e.steps[e.current]
}

// Now returns the engine's clock reading.
func (e *Engine) Now() time.Time {
	return e.now()
}

// Visit returns the token of the current step visit.
func (e *Engine) Visit() VisitToken {
	return VisitToken{Step: e.steps[e.current].ID, Seq: e.visitSeq}
}

// IsCurrent reports whether tok still identifies the active visit.
func (e *Engine) IsCurrent(tok VisitToken) bool {
	return tok == e.Visit()
}

func (e *Engine) StepProgress(id domain.StepID) int { return StepProgress(id, e.draft) }

func (e *Engine) StepStatus(id domain.StepID) StepStatus { return Status(id, e.draft) }

func (e *Engine) IsStepComplete(id domain.StepID) bool { return IsStepComplete(id, e.draft) }

func (e *Engine) CanAdvanceFrom(id domain.StepID) (bool, string) { return Gate(id, e.draft) }

func (e *Engine) OverallProgress() int { return OverallProgress(e.draft) }

// ── persistence ──────────────────────────────────────────────────────────────

// Restore loads the stored draft. A missing or unreadable snapshot starts an
// empty draft; the failure is reported to the observer only.
func (e *Engine) Restore(ctx context.Context) {
	start := e.now()
	loaded, err := e.store.Load(ctx)
	fields := map[string]any{"found": loaded != nil}

	e.draft = domain.PlanDraft{}
	e.current = 0
	if err == nil && loaded != nil {
		e.draft = loaded.Clone()
		e.draft.Normalize()
		if pos := domain.StepPosition(e.draft.CurrentStep); pos >= 0 {
			e.current = pos
		}
	}
	e.visitSeq++
	e.observe(ctx, "restore", start, err, fields)
}

// Persist writes the whole draft to the store.
func (e *Engine) Persist(ctx context.Context) error {
	e.draft.CurrentStep = e.steps[e.current].ID
	return e.save(ctx, e.draft.Clone())
}

func (e *Engine) save(ctx context.Context, snapshot domain.PlanDraft) error {
	start := e.now()
	err := e.store.Save(ctx, &snapshot)
	e.observe(ctx, "persist", start, err, nil)
	if err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	return nil
}

// autosave persists after a mutation and converts the first failure of the
// session into a user-facing warning.
func (e *Engine) autosave(ctx context.Context) string {
	if err := e.Persist(ctx); err != nil {
		if !e.saveWarned {
			e.saveWarned = true
			return "your changes could not be saved and will be lost when you leave: " + err.Error()
		}
	}
	return ""
}

// ── mutation ─────────────────────────────────────────────────────────────────

// Update validates and merges a patch, then saves the draft. A rejected patch
// leaves the draft untouched.
func (e *Engine) Update(ctx context.Context, p domain.Patch) Outcome {
	start := e.now()
	if p.IsEmpty() {
		return e.outcome(true, "")
	}
	if err := p.Validate(e.draft, e.now()); err != nil {
		e.observe(ctx, "update", start, err, nil)
		return e.outcome(false, err.Error())
	}

	next := e.draft.Clone()
	next.Apply(p)
	if next.ID == "" {
		next.ID = domain.NewDraftID()
	}
	next.UpdatedAt = e.now().UTC().Format(time.RFC3339)
	e.draft = next

	out := e.outcome(true, "")
	out.Warning = e.autosave(ctx)
	e.observe(ctx, "update", start, nil, nil)
	return out
}

// MarkComplete records explicit completion of a step.
func (e *Engine) MarkComplete(ctx context.Context, id domain.StepID) Outcome {
	return e.setCompleted(ctx, id, true)
}

// UnmarkComplete withdraws explicit completion of a step.
func (e *Engine) UnmarkComplete(ctx context.Context, id domain.StepID) Outcome {
	return e.setCompleted(ctx, id, false)
}

func (e *Engine) setCompleted(ctx context.Context, id domain.StepID, done bool) Outcome {
	if domain.StepPosition(id) < 0 {
		return e.outcome(false, fmt.Sprintf("unknown step %q", id))
	}
	e.draft.SetCompleted(id, done)
	out := e.outcome(true, "")
	out.Warning = e.autosave(ctx)
	return out
}

// ── navigation ───────────────────────────────────────────────────────────────

// GoNext advances one step. A required step whose gate fails refuses with the
// gate's reason; an optional step advances anyway and returns the reason as a
// hint. The last step refuses.
func (e *Engine) GoNext(ctx context.Context) Outcome {
	start := e.now()
	step := e.steps[e.current]
	if e.current == len(e.steps)-1 {
		return e.outcome(false, "already at the last step")
	}

	ok, reason := Gate(step.ID, e.draft)
	if !ok && step.Required {
		e.observe(ctx, "go_next", start, errors.New(reason), map[string]any{"step": string(step.ID)})
		return e.outcome(false, reason)
	}

	e.enter(e.current + 1)
	out := e.outcome(true, "")
	if !ok {
		out.Hint = reason
	}
	out.Warning = e.autosave(ctx)
	e.observe(ctx, "go_next", start, nil, map[string]any{"step": string(out.Step)})
	return out
}

// GoPrevious moves back one step. The first step refuses.
func (e *Engine) GoPrevious(ctx context.Context) Outcome {
	if e.current == 0 {
		return e.outcome(false, "already at the first step")
	}
	e.enter(e.current - 1)
	out := e.outcome(true, "")
	out.Warning = e.autosave(ctx)
	return out
}

// JumpTo moves directly to any known step.
func (e *Engine) JumpTo(ctx context.Context, id domain.StepID) Outcome {
	pos := domain.StepPosition(id)
	if pos < 0 {
		return e.outcome(false, fmt.Sprintf("unknown step %q", id))
	}
	e.enter(pos)
	out := e.outcome(true, "")
	out.Warning = e.autosave(ctx)
	return out
}

// Finish closes the plan when every required step is complete: the summary
// step is marked done, the draft is saved, and the session starts over with
// an empty in-memory draft. The stored snapshot is kept.
func (e *Engine) Finish(ctx context.Context) Outcome {
	for _, id := range domain.RequiredSteps() {
		if !IsStepComplete(id, e.draft) {
			s, _ := domain.StepByID(id)
			return e.outcome(false, fmt.Sprintf("complete the %s step first", s.Label))
		}
	}
	finished := e.draft.Clone()
	finished.SetCompleted(domain.StepSummary, true)
	finished.CurrentStep = domain.StepSummary
	if err := e.save(ctx, finished); err != nil {
		return e.outcome(false, "the finished plan could not be saved: "+err.Error())
	}
	e.Discard()
	return e.outcome(true, "")
}

// Discard drops the in-memory draft and returns to the first step without
// touching the store.
func (e *Engine) Discard() {
	e.draft = domain.PlanDraft{}
	e.enter(0)
}

func (e *Engine) enter(pos int) {
	e.current = pos
	e.visitSeq++
}

func (e *Engine) outcome(ok bool, reason string) Outcome {
	return Outcome{OK: ok, Reason: reason, Step: e.steps[e.current].ID}
}

func (e *Engine) observe(ctx context.Context, name string, start time.Time, err error, fields map[string]any) {
	e.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  e.now().Sub(start),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: start,
	})
}
