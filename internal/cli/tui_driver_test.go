package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tripwise/internal/domain"
	"github.com/alexanderramin/tripwise/internal/teatest"
)

// planDriver wraps teatest.Driver with access to the plan model's state.
type planDriver struct {
	*teatest.Driver
	app *App
}

// newPlanDriver builds the interactive model for app, sizes it and runs Init,
// which loads the catalog synchronously from the built-in lists.
func newPlanDriver(t *testing.T, app *App) *planDriver {
	t.Helper()
	d := teatest.New(t, newPlanModel(context.Background(), app), teatest.WithSize(100, 40))
	d.Init()
	return &planDriver{Driver: d, app: app}
}

func (d *planDriver) model() *planModel {
	return d.Model.(*planModel)
}

func (d *planDriver) Step() domain.StepID {
	return d.app.Engine.Current().ID
}

func (d *planDriver) Note() string {
	return d.model().note
}

// seedProject fills the project step through the engine.
func seedProject(t *testing.T, app *App) {
	t.Helper()
	out := app.Engine.Update(context.Background(), domain.Patch{
		ProjectType:        domain.Ptr(domain.ProjectStudy),
		DestinationCountry: domain.Ptr("France"),
		StudyField:         domain.Ptr("law"),
		StudyLevel:         domain.Ptr(domain.LevelMaster),
		StartDate:          domain.Ptr("2030-01-01"),
	})
	require.True(t, out.OK, out.Reason)
}

// seedReady completes every required step through the engine.
func seedReady(t *testing.T, app *App) {
	t.Helper()
	seedProject(t, app)
	ctx := context.Background()
	out := app.Engine.Update(ctx, domain.Patch{
		SelectInstitution:   domain.Ptr("1"),
		SelectAccommodation: domain.Ptr("dorm"),
		MarkDocuments:       map[domain.DocumentKind]domain.DocumentMark{domain.DocPassport: domain.MarkHave},
	})
	require.True(t, out.OK, out.Reason)
	require.True(t, app.Engine.MarkComplete(ctx, domain.StepDocuments).OK)
}
