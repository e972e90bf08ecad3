package cli

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/alexanderramin/tripwise/internal/domain"
)

type planKeys struct {
	Next     key.Binding
	Back     key.Binding
	Jump     key.Binding
	Complete key.Binding
	Up       key.Binding
	Down     key.Binding
	Edit     key.Binding
	Choose   key.Binding
	Reload   key.Binding
	Have     key.Binding
	Need     key.Binding
	Remove   key.Binding
	Flight   key.Binding
	Insure   key.Binding
	Transfer key.Binding
	Send     key.Binding
	Finish   key.Binding
	Help     key.Binding
	Quit     key.Binding

	step domain.StepID
}

func newPlanKeys() planKeys {
	return planKeys{
		Next:     key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab/→", "next step")),
		Back:     key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab/←", "back")),
		Jump:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "jump")),
		Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "mark done")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Edit:     key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Choose:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "choose")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Have:     key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "have")),
		Need:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "need")),
		Remove:   key.NewBinding(key.WithKeys("x", "backspace"), key.WithHelp("x", "remove")),
		Flight:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "flight")),
		Insure:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "insurance")),
		Transfer: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "transfer")),
		Send:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "send to advisor")),
		Finish:   key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "finish")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// stepKeys lists the bindings that act on the current step.
func (k planKeys) stepKeys() []key.Binding {
	switch k.step {
	case domain.StepProject:
		return []key.Binding{k.Edit}
	case domain.StepInstitution, domain.StepHousing:
		return []key.Binding{k.Up, k.Down, k.Choose, k.Reload}
	case domain.StepDocuments:
		return []key.Binding{k.Up, k.Down, k.Have, k.Need, k.Remove}
	case domain.StepTravel:
		return []key.Binding{k.Flight, k.Insure, k.Transfer, k.Edit}
	case domain.StepSummary:
		return []key.Binding{k.Send, k.Finish}
	}
	return nil
}

// ShortHelp implements help.KeyMap.
func (k planKeys) ShortHelp() []key.Binding {
	return append(k.stepKeys(), k.Next, k.Back, k.Help, k.Quit)
}

// FullHelp implements help.KeyMap.
func (k planKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.stepKeys(),
		{k.Next, k.Back, k.Jump, k.Complete},
		{k.Help, k.Quit},
	}
}
