package cli

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/alexanderramin/tripwise/internal/catalog"
	"github.com/alexanderramin/tripwise/internal/cli/formatter"
	"github.com/alexanderramin/tripwise/internal/domain"
	"github.com/alexanderramin/tripwise/internal/flow"
)

// namesWarmedMsg reports that selection names for the summary are cached.
type namesWarmedMsg struct{}

// catalogLoadedMsg carries a list fetched for one step visit.
type catalogLoadedMsg struct {
	visit flow.VisitToken
	res   catalog.Result
}

type formKind int

const (
	formNone formKind = iota
	formProject
	formTravel
)

// planModel is the interactive planning flow. It renders one step at a time
// and routes every change through the engine.
type planModel struct {
	ctx  context.Context
	app  *App
	keys planKeys
	help help.Model
	spin spinner.Model

	width  int
	height int

	loading    bool
	cancelLoad context.CancelFunc
	result     *catalog.Result
	cursor     int

	form     *huh.Form
	formKind formKind
	project  *projectValues
	travel   *travelValues

	note     string
	noteErr  bool
	quitting bool
}

func newPlanModel(ctx context.Context, app *App) *planModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	m := &planModel{
		ctx:  ctx,
		app:  app,
		keys: newPlanKeys(),
		help: help.New(),
		spin: sp,
	}
	m.keys.step = app.Engine.Current().ID
	return m
}

func (m *planModel) engine() *flow.Engine { return m.app.Engine }

func needsCatalog(id domain.StepID) (domain.EntityKind, bool) {
	switch id {
	case domain.StepInstitution:
		return domain.EntityInstitution, true
	case domain.StepHousing:
		return domain.EntityAccommodation, true
	}
	return "", false
}

func (m *planModel) Init() tea.Cmd {
	return m.enterStep()
}

// enterStep resets per-step state after a navigation and starts the catalog
// fetch the new step needs. Any fetch still running for the previous visit
// is cancelled; its result would be dropped anyway.
func (m *planModel) enterStep() tea.Cmd {
	if m.cancelLoad != nil {
		m.cancelLoad()
		m.cancelLoad = nil
	}
	m.keys.step = m.engine().Current().ID
	m.result = nil
	m.cursor = 0
	m.loading = false

	if m.keys.step == domain.StepSummary {
		return m.warmNames()
	}
	kind, ok := needsCatalog(m.keys.step)
	if !ok {
		return nil
	}
	return m.startLoad(kind)
}

// warmNames resolves the selected names off the render path so the summary
// shows provider names rather than the built-in ones.
func (m *planModel) warmNames() tea.Cmd {
	d := m.engine().Draft()
	resolve := m.app.Resolver(m.ctx, d)
	return func() tea.Msg {
		resolve(domain.EntityInstitution, d.InstitutionID())
		resolve(domain.EntityAccommodation, d.AccommodationID())
		return namesWarmedMsg{}
	}
}

func (m *planModel) startLoad(kind domain.EntityKind) tea.Cmd {
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancelLoad = cancel
	m.loading = true

	visit := m.engine().Visit()
	q := catalog.QueryFor(m.engine().Draft())
	app := m.app
	load := func() tea.Msg {
		return catalogLoadedMsg{visit: visit, res: app.Catalog.Load(ctx, kind, q)}
	}
	return tea.Batch(m.spin.Tick, load)
}

func (m *planModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.form != nil {
			m.form = m.form.WithWidth(min(msg.Width, 72))
		}
		return m, nil

	case catalogLoadedMsg:
		if !m.engine().IsCurrent(msg.visit) {
			return m, nil
		}
		m.loading = false
		m.cancelLoad = nil
		m.app.remember(msg.res)
		res := msg.res
		m.result = &res
		m.cursor = m.selectedIndex()
		return m, nil

	case namesWarmedMsg:
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *planModel) quit() (tea.Model, tea.Cmd) {
	if m.cancelLoad != nil {
		m.cancelLoad()
	}
	m.quitting = true
	return m, tea.Quit
}

func (m *planModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyCtrlC:
			return m.quit()
		case tea.KeyEsc:
			m.closeForm()
			m.setNote("Edit cancelled.", false)
			return m, nil
		}
	}

	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		kind := m.formKind
		m.closeForm()
		return m, m.submitForm(kind)
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

func (m *planModel) openForm(kind formKind) tea.Cmd {
	d := m.engine().Draft()
	switch kind {
	case formProject:
		m.project = projectValuesFrom(d)
		m.form = projectForm(m.project, m.engine().Now)
	case formTravel:
		m.travel = travelValuesFrom(d)
		m.form = travelForm(m.travel)
	default:
		return nil
	}
	m.formKind = kind
	m.note = ""
	if m.width > 0 {
		m.form = m.form.WithWidth(min(m.width, 72))
	}
	return m.form.Init()
}

func (m *planModel) closeForm() {
	m.form = nil
	m.formKind = formNone
}

// submitForm applies the values of a completed form.
func (m *planModel) submitForm(kind formKind) tea.Cmd {
	d := m.engine().Draft()
	var p domain.Patch
	switch kind {
	case formProject:
		p = m.project.patch(d)
	case formTravel:
		p = m.travel.patch(d)
	}
	if p.IsEmpty() {
		m.setNote("No changes.", false)
		return nil
	}
	m.apply(m.engine().Update(m.ctx, p), "Saved.")
	return nil
}

// apply turns an engine outcome into the note line.
func (m *planModel) apply(out flow.Outcome, success string) {
	if !out.OK {
		m.setNote(out.Reason, true)
		return
	}
	note := success
	if out.Hint != "" {
		note = out.Hint
	}
	if out.Warning != "" {
		m.setNote(out.Warning, true)
		return
	}
	m.setNote(note, false)
}

func (m *planModel) setNote(s string, isErr bool) {
	m.note = s
	m.noteErr = isErr
}

// navigate applies a navigation outcome and re-enters the step when it moved.
func (m *planModel) navigate(out flow.Outcome) tea.Cmd {
	m.apply(out, "")
	if !out.OK {
		return nil
	}
	return m.enterStep()
}

func (m *planModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := m.engine()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Next):
		return m, m.navigate(e.GoNext(m.ctx))
	case key.Matches(msg, m.keys.Back):
		return m, m.navigate(e.GoPrevious(m.ctx))
	case key.Matches(msg, m.keys.Jump):
		n, _ := strconv.Atoi(msg.String())
		steps := e.Steps()
		if n >= 1 && n <= len(steps) {
			return m, m.navigate(e.JumpTo(m.ctx, steps[n-1].ID))
		}
		return m, nil
	case key.Matches(msg, m.keys.Complete):
		id := e.Current().ID
		if e.Draft().HasCompleted(id) {
			m.apply(e.UnmarkComplete(m.ctx, id), "Completion withdrawn.")
		} else {
			m.apply(e.MarkComplete(m.ctx, id), "Marked done.")
		}
		return m, nil
	}

	switch e.Current().ID {
	case domain.StepProject:
		if key.Matches(msg, m.keys.Edit) {
			return m, m.openForm(formProject)
		}
	case domain.StepInstitution, domain.StepHousing:
		return m, m.handleCatalogKey(msg)
	case domain.StepDocuments:
		m.handleDocumentsKey(msg)
	case domain.StepTravel:
		return m, m.handleTravelKey(msg)
	case domain.StepSummary:
		m.handleSummaryKey(msg)
	}
	return m, nil
}

func (m *planModel) moveCursor(msg tea.KeyMsg, n int) bool {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return true
	case key.Matches(msg, m.keys.Down):
		if m.cursor < n-1 {
			m.cursor++
		}
		return true
	}
	return false
}

func (m *planModel) entities() []domain.CatalogEntity {
	if m.result == nil {
		return nil
	}
	return m.result.Entities
}

func (m *planModel) selectedIndex() int {
	id := selectedID(m.engine().Draft(), m.catalogKind())
	for i, e := range m.entities() {
		if e.ID == id {
			return i
		}
	}
	return 0
}

func (m *planModel) catalogKind() domain.EntityKind {
	kind, _ := needsCatalog(m.engine().Current().ID)
	return kind
}

func (m *planModel) handleCatalogKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Reload) {
		return m.enterStep()
	}
	list := m.entities()
	if m.loading || m.moveCursor(msg, len(list)) || len(list) == 0 {
		return nil
	}
	if key.Matches(msg, m.keys.Choose) {
		chosen := list[m.cursor]
		var p domain.Patch
		if m.catalogKind() == domain.EntityAccommodation {
			p.SelectAccommodation = domain.Ptr(chosen.ID)
		} else {
			p.SelectInstitution = domain.Ptr(chosen.ID)
		}
		m.apply(m.engine().Update(m.ctx, p), "Selected "+chosen.Name+".")
	}
	return nil
}

func (m *planModel) handleDocumentsKey(msg tea.KeyMsg) {
	kinds := domain.DocumentKinds
	if m.moveCursor(msg, len(kinds)) {
		return
	}
	k := kinds[m.cursor]
	var p domain.Patch
	switch {
	case key.Matches(msg, m.keys.Have):
		p.MarkDocuments = map[domain.DocumentKind]domain.DocumentMark{k: domain.MarkHave}
	case key.Matches(msg, m.keys.Need):
		p.MarkDocuments = map[domain.DocumentKind]domain.DocumentMark{k: domain.MarkNeed}
	case key.Matches(msg, m.keys.Remove):
		p.UnmarkDocuments = []domain.DocumentKind{k}
	default:
		return
	}
	m.apply(m.engine().Update(m.ctx, p), "")
}

func (m *planModel) handleTravelKey(msg tea.KeyMsg) tea.Cmd {
	tb := m.engine().Draft().TravelBooking
	var p domain.Patch
	switch {
	case key.Matches(msg, m.keys.Flight):
		p.FlightBooked = domain.Ptr(!tb.FlightBooked)
	case key.Matches(msg, m.keys.Insure):
		p.InsuranceActive = domain.Ptr(!tb.InsuranceActive)
	case key.Matches(msg, m.keys.Transfer):
		p.TransferBooked = domain.Ptr(!tb.TransferBooked)
	case key.Matches(msg, m.keys.Edit):
		return m.openForm(formTravel)
	default:
		return nil
	}
	m.apply(m.engine().Update(m.ctx, p), "")
	return nil
}

func (m *planModel) handleSummaryKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Send):
		h, channel, err := m.app.SendHandoff(m.ctx, "", "")
		if err != nil {
			m.setNote(err.Error(), true)
			return
		}
		note := "Handoff queued via " + channel
		if h.Recipient != "" {
			note += " to " + h.Recipient
		}
		m.setNote(note+".", false)
	case key.Matches(msg, m.keys.Finish):
		out := m.engine().Finish(m.ctx)
		if !out.OK {
			m.setNote(out.Reason, true)
			return
		}
		m.enterStep()
		m.setNote("Plan finished. A fresh plan starts here.", false)
	}
}
