package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/patrickprogramme/ytbrief/pkg/model"
)

// AutoOperator refuse toute saisie : mode lot, auto_mode ou entrée non interactive.
type AutoOperator struct{}

func (AutoOperator) ManualTranscript(ctx context.Context, ref model.VideoRef, title string) (string, bool, error) {
	return "", false, nil
}

func (AutoOperator) Interactive() bool { return false }

// TerminalOperator demande une transcription ou un résumé saisi à la main.
type TerminalOperator struct {
	opts []tea.ProgramOption
}

// NewTerminalOperator : opts est transmis à tea.NewProgram (entrée/sortie en test).
func NewTerminalOperator(opts ...tea.ProgramOption) *TerminalOperator {
	return &TerminalOperator{opts: opts}
}

func (o *TerminalOperator) Interactive() bool { return true }

// ManualTranscript ouvre un éditeur multi-ligne. Ctrl+S valide, Échap refuse.
func (o *TerminalOperator) ManualTranscript(ctx context.Context, ref model.VideoRef, title string) (string, bool, error) {
	m := newManualModel(ref, title)
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, o.opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		return "", false, fmt.Errorf("saisie manuelle : %w", err)
	}
	fm, ok := final.(manualModel)
	if !ok || !fm.submitted {
		return "", false, nil
	}
	text := strings.TrimSpace(fm.input.Value())
	return text, text != "", nil
}

var panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

type manualModel struct {
	ref       model.VideoRef
	title     string
	input     textarea.Model
	submitted bool
	done      bool
}

func newManualModel(ref model.VideoRef, title string) manualModel {
	ta := textarea.New()
	ta.Placeholder = "Collez ou tapez la transcription, ou un résumé de la vidéo..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(80)
	ta.SetHeight(12)
	ta.Focus()
	return manualModel{ref: ref, title: title, input: ta}
}

func (m manualModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m manualModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 4 {
			m.input.SetWidth(msg.Width - 4)
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s", "ctrl+d":
			m.submitted = strings.TrimSpace(m.input.Value()) != ""
			m.done = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m manualModel) View() string {
	if m.done {
		return ""
	}
	header := titleStyle.Render("Aucune transcription disponible")
	video := mutedStyle.Render(fmt.Sprintf("%s  %s", m.title, m.ref.CanonicalURL()))
	hints := mutedStyle.Render("Ctrl+S : valider   Échap : passer cette vidéo")
	return lipgloss.JoinVertical(lipgloss.Left, header, video, panelStyle.Render(m.input.View()), hints)
}
