package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/tripwise/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

// jsonStore keeps the draft as encoded bytes so every restore goes through a
// real serialize/deserialize cycle.
type jsonStore struct {
	raw     []byte
	saveErr error
	saves   int
}

func (s *jsonStore) Load(context.Context) (*domain.PlanDraft, error) {
	if s.raw == nil {
		return nil, nil
	}
	var d domain.PlanDraft
	if err := json.Unmarshal(s.raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *jsonStore) Save(_ context.Context, d *domain.PlanDraft) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	s.raw = raw
	return nil
}

func newTestEngine(store DraftStore, opts ...Option) *Engine {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewEngine(store, opts...)
}

func projectPatch() domain.Patch {
	return domain.Patch{
		DestinationCountry: domain.Ptr("France"),
		StudyField:         domain.Ptr("law"),
		StudyLevel:         domain.Ptr(domain.LevelMaster),
		StartDate:          domain.Ptr("2030-01-01"),
	}
}

func TestUpdate_PastStartDateRejected(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(&jsonStore{})
	require.True(t, e.Update(ctx, domain.Patch{StartDate: domain.Ptr("2030-01-01")}).OK)

	out := e.Update(ctx, domain.Patch{StartDate: domain.Ptr("2026-03-09")})
	assert.False(t, out.OK)
	assert.NotEmpty(t, out.Reason)
	assert.Equal(t, "2030-01-01", e.Draft().StartDate)
}

func TestUpdate_RejectedPatchIsAtomic(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(&jsonStore{})

	out := e.Update(ctx, domain.Patch{
		DestinationCountry: domain.Ptr("Spain"),
		StartDate:          domain.Ptr("2020-01-01"),
	})
	assert.False(t, out.OK)
	assert.Empty(t, e.Draft().DestinationCountry)
}

func TestUpdate_AssignsIDAndStamp(t *testing.T) {
	e := newTestEngine(&jsonStore{})
	require.True(t, e.Update(context.Background(), domain.Patch{StudyField: domain.Ptr("law")}).OK)

	d := e.Draft()
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, "2026-03-10T09:30:00Z", d.UpdatedAt)
}

func TestUpdate_EmptyPatchDoesNotSave(t *testing.T) {
	store := &jsonStore{}
	e := newTestEngine(store)
	assert.True(t, e.Update(context.Background(), domain.Patch{}).OK)
	assert.Equal(t, 0, store.saves)
}

func TestUpdate_SaveFailureWarnsOnce(t *testing.T) {
	ctx := context.Background()
	store := &jsonStore{saveErr: errors.New("quota exceeded")}
	e := newTestEngine(store)

	first := e.Update(ctx, domain.Patch{StudyField: domain.Ptr("law")})
	assert.True(t, first.OK, "in-memory update still succeeds")
	assert.Contains(t, first.Warning, "quota exceeded")

	second := e.Update(ctx, domain.Patch{StudyField: domain.Ptr("history")})
	assert.True(t, second.OK)
	assert.Empty(t, second.Warning)
	assert.Equal(t, "history", e.Draft().StudyField)
}

func TestRestore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := &jsonStore{}
	a := newTestEngine(store)
	require.True(t, a.Update(ctx, projectPatch()).OK)
	require.True(t, a.Update(ctx, domain.Patch{
		SelectInstitution: domain.Ptr("7"),
		MarkDocuments: map[domain.DocumentKind]domain.DocumentMark{
			domain.DocPassport:    domain.MarkHave,
			domain.DocTranscripts: domain.MarkNeed,
		},
		VisaStatus:       domain.Ptr(domain.VisaNeed),
		FlightBooked:     domain.Ptr(true),
		EmergencyContact: domain.Ptr("Ana +34 600 000 000"),
	}).OK)
	require.True(t, a.MarkComplete(ctx, domain.StepDocuments).OK)
	require.True(t, a.JumpTo(ctx, domain.StepTravel).OK)
	require.NoError(t, a.Persist(ctx))

	b := newTestEngine(store)
	b.Restore(ctx)
	assert.Equal(t, a.Draft(), b.Draft())
	assert.Equal(t, domain.StepTravel, b.Current().ID)
}

func TestRestore_RoundTripOfEmptyDraft(t *testing.T) {
	ctx := context.Background()
	store := &jsonStore{}
	a := newTestEngine(store)
	require.NoError(t, a.Persist(ctx))

	b := newTestEngine(store)
	b.Restore(ctx)
	assert.Equal(t, a.Draft(), b.Draft())
}

func TestRestore_CorruptSnapshotStartsEmpty(t *testing.T) {
	var logs bytes.Buffer
	store := &jsonStore{raw: []byte(`{"destinationCountry": "Fra`)}
	e := newTestEngine(store, WithObserver(NewWriterUseCaseObserver(&logs)))

	e.Restore(context.Background())
	assert.Equal(t, domain.PlanDraft{}, e.Draft())
	assert.Equal(t, domain.StepProject, e.Current().ID)
	assert.Contains(t, logs.String(), "use_case=restore")
	assert.Contains(t, logs.String(), "level=WARN")
}

func TestRestore_NothingStored(t *testing.T) {
	e := newTestEngine(&jsonStore{})
	e.Restore(context.Background())
	assert.Equal(t, domain.PlanDraft{}, e.Draft())
}

func TestRestore_IgnoresUnknownKeys(t *testing.T) {
	store := &jsonStore{raw: []byte(`{"studyField":"law","legacyFlag":true,"currentStep":"housing"}`)}
	e := newTestEngine(store)
	e.Restore(context.Background())
	assert.Equal(t, "law", e.Draft().StudyField)
	assert.Equal(t, domain.StepHousing, e.Current().ID)
}

func TestGoNext_RequiredGateBlocks(t *testing.T) {
	e := newTestEngine(&jsonStore{})
	out := e.GoNext(context.Background())
	assert.False(t, out.OK)
	assert.Equal(t, "fill in destination, study field, study level and start date", out.Reason)
	assert.Equal(t, domain.StepProject, e.Current().ID)
}

func TestGoNext_OptionalStepAdvancesWithHint(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(&jsonStore{})
	require.True(t, e.JumpTo(ctx, domain.StepTravel).OK)

	out := e.GoNext(ctx)
	assert.True(t, out.OK)
	assert.Equal(t, domain.StepSummary, out.Step)
	assert.NotEmpty(t, out.Hint)

	last := e.GoNext(ctx)
	assert.False(t, last.OK)
	assert.Equal(t, domain.StepSummary, e.Current().ID)
}

func TestGoPrevious(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(&jsonStore{})
	assert.False(t, e.GoPrevious(ctx).OK)

	require.True(t, e.JumpTo(ctx, domain.StepHousing).OK)
	out := e.GoPrevious(ctx)
	assert.True(t, out.OK)
	assert.Equal(t, domain.StepInstitution, e.Current().ID)
}

func TestJumpTo_UnknownStep(t *testing.T) {
	out := newTestEngine(&jsonStore{}).JumpTo(context.Background(), "visa")
	assert.False(t, out.OK)
	assert.Equal(t, `unknown step "visa"`, out.Reason)
}

func TestVisitToken_ChangesOnNavigation(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(&jsonStore{})
	require.True(t, e.JumpTo(ctx, domain.StepInstitution).OK)
	tok := e.Visit()
	assert.True(t, e.IsCurrent(tok))

	require.True(t, e.GoPrevious(ctx).OK)
	require.True(t, e.JumpTo(ctx, domain.StepInstitution).OK)
	assert.False(t, e.IsCurrent(tok), "re-entering a step starts a new visit")
}

func TestFinish(t *testing.T) {
	ctx := context.Background()
	store := &jsonStore{}
	e := newTestEngine(store)

	out := e.Finish(ctx)
	assert.False(t, out.OK)
	assert.Contains(t, out.Reason, "Project")

	require.True(t, e.Update(ctx, projectPatch()).OK)
	require.True(t, e.Update(ctx, domain.Patch{
		SelectInstitution:   domain.Ptr("7"),
		SelectAccommodation: domain.Ptr("dorm"),
		MarkDocuments:       map[domain.DocumentKind]domain.DocumentMark{domain.DocPassport: domain.MarkHave},
	}).OK)
	require.True(t, e.MarkComplete(ctx, domain.StepDocuments).OK)

	out = e.Finish(ctx)
	assert.True(t, out.OK)
	assert.Equal(t, domain.PlanDraft{}, e.Draft())
	assert.Equal(t, domain.StepProject, e.Current().ID)

	stored, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.HasCompleted(domain.StepSummary))
	assert.Equal(t, "France", stored.DestinationCountry)
}

func TestFinish_SaveFailureLeavesDraftUntouched(t *testing.T) {
	ctx := context.Background()
	store := &jsonStore{}
	e := newTestEngine(store)
	require.True(t, e.Update(ctx, projectPatch()).OK)
	require.True(t, e.Update(ctx, domain.Patch{
		SelectInstitution:   domain.Ptr("7"),
		SelectAccommodation: domain.Ptr("dorm"),
		MarkDocuments:       map[domain.DocumentKind]domain.DocumentMark{domain.DocPassport: domain.MarkHave},
	}).OK)
	require.True(t, e.MarkComplete(ctx, domain.StepDocuments).OK)
	require.True(t, e.JumpTo(ctx, domain.StepHousing).OK)

	store.saveErr = errors.New("disk full")
	out := e.Finish(ctx)

	assert.False(t, out.OK)
	assert.Contains(t, out.Reason, "disk full")
	assert.Equal(t, domain.StepHousing, out.Step)
	assert.Equal(t, domain.StepHousing, e.Current().ID)
	assert.False(t, e.Draft().HasCompleted(domain.StepSummary))
	assert.Equal(t, "France", e.Draft().DestinationCountry)

	store.saveErr = nil
	assert.True(t, e.Finish(ctx).OK)
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, ev UseCaseEvent) {
	o.events = append(o.events, ev)
}

func TestObserver_RejectedUpdateIsAFailure(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	e := newTestEngine(&jsonStore{}, WithObserver(obs))

	require.False(t, e.Update(ctx, domain.Patch{StartDate: domain.Ptr("2020-01-01")}).OK)
	require.Len(t, obs.events, 1)
	assert.Equal(t, "update", obs.events[0].Name)
	assert.False(t, obs.events[0].Success)
	assert.Error(t, obs.events[0].Err)

	require.True(t, e.Update(ctx, domain.Patch{StudyField: domain.Ptr("law")}).OK)
	last := obs.events[len(obs.events)-1]
	assert.Equal(t, "update", last.Name)
	assert.True(t, last.Success)
}

func TestUnmarkComplete(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(&jsonStore{})
	require.True(t, e.MarkComplete(ctx, domain.StepTravel).OK)
	assert.Equal(t, 100, e.StepProgress(domain.StepTravel))

	require.True(t, e.UnmarkComplete(ctx, domain.StepTravel).OK)
	assert.Equal(t, 0, e.StepProgress(domain.StepTravel))
	assert.False(t, e.MarkComplete(ctx, "visa").OK)
}

func TestEndToEndScenario(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(&jsonStore{})

	require.True(t, e.Update(ctx, projectPatch()).OK)
	ok, _ := e.CanAdvanceFrom(domain.StepProject)
	require.True(t, ok)

	out := e.GoNext(ctx)
	require.True(t, out.OK)
	assert.Equal(t, domain.StepInstitution, e.Current().ID)

	require.True(t, e.Update(ctx, domain.Patch{SelectInstitution: domain.Ptr("7")}).OK)
	assert.Equal(t, 100, e.StepProgress(domain.StepInstitution))

	require.True(t, e.JumpTo(ctx, domain.StepDocuments).OK)
	out = e.GoNext(ctx)
	assert.False(t, out.OK)
	assert.Equal(t, "add at least one document", out.Reason)
	assert.Equal(t, domain.StepDocuments, e.Current().ID)
}
