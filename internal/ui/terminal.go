package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"

	"github.com/patrickprogramme/ytbrief/internal/clipboard"
	"github.com/patrickprogramme/ytbrief/pkg/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	summaryPanel = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type terminalUI struct {
	reader *bufio.Reader
	out    io.Writer
	errOut io.Writer
	// readClipboard vaut nil quand le presse-papier ne doit pas être consulté
	readClipboard func() (string, error)
}

func NewTerminal() Interface {
	return &terminalUI{
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
		errOut:        os.Stderr,
		readClipboard: clipboard.ReadAll,
	}
}

// IsInteractive indique si l'entrée standard est un terminal.
func IsInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// splitURLs découpe une saisie (espaces, virgules, retours à la ligne) et ne
// garde que les entrées qui désignent une vidéo ou une playlist.
func splitURLs(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t' || r == '\r'
	})
	var out []string
	for _, f := range fields {
		if model.ExtractVideoID(f) != "" || model.ExtractPlaylistID(f) != "" {
			out = append(out, f)
		}
	}
	return out
}

func (t *terminalUI) GetYtURLs(ctx context.Context) ([]string, error) {
	// 1) clipboard
	if t.readClipboard != nil {
		if clip, err := t.readClipboard(); err == nil {
			if urls := splitURLs(clip); len(urls) > 0 {
				t.PrintInfo(ctx, fmt.Sprintf("Utilisation des URL du presse-papier : %s", strings.Join(urls, ", ")))
				return urls, nil
			}
		}
	}
	// 2) prompt
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fmt.Fprint(t.out, "Entrez une ou plusieurs URL YouTube (vidéo ou playlist) : ")
		input, err := t.reader.ReadString('\n')
		if urls := splitURLs(input); len(urls) > 0 {
			return urls, nil
		}
		if err != nil {
			return nil, fmt.Errorf("lecture stdin: %w", err)
		}
		fmt.Fprintln(t.out, errorStyle.Render("❌ URL invalide. Essayez à nouveau."))
	}
}

func (t *terminalUI) WaitForExit(ctx context.Context) error {
	fmt.Fprintln(t.out, mutedStyle.Render("\n\nAppuyez sur Ctrl+C pour quitter."))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-sigCh:
		return nil
	}
}

func (t *terminalUI) PrintInfo(ctx context.Context, s string) {
	fmt.Fprintln(t.out, s)
}

func (t *terminalUI) PrintError(ctx context.Context, s string) {
	fmt.Fprintln(t.errOut, errorStyle.Render(s))
}

func (t *terminalUI) PrintItem(ctx context.Context, index, total int, item model.ReportItem) {
	fmt.Fprintln(t.out, formatItem(index, total, item))
}

func (t *terminalUI) PrintSummary(ctx context.Context, report *model.BatchReport) {
	fmt.Fprintln(t.out, FormatSummary(report))
}

func statusStyle(s model.Status) lipgloss.Style {
	switch s {
	case model.StatusSuccess:
		return okStyle
	case model.StatusCancelled:
		return warnStyle
	default:
		return errorStyle
	}
}

func formatItem(index, total int, item model.ReportItem) string {
	label := item.Title
	if label == "" {
		label = item.URL
	}
	line := fmt.Sprintf("[%d/%d] %s %s", index, total, statusStyle(item.Status).Render(string(item.Status)), label)
	if item.Detail != "" {
		line += " " + mutedStyle.Render("("+item.Detail+")")
	}
	return line
}

// FormatSummary rend le bilan du lot, échecs détaillés.
func FormatSummary(report *model.BatchReport) string {
	if report == nil {
		return ""
	}
	lines := []string{
		titleStyle.Render("Bilan du lot"),
		report.Summary(),
	}
	if failed := report.FailedItems(); len(failed) > 0 {
		lines = append(lines, "", errorStyle.Render("Échecs :"))
		for _, it := range failed {
			label := it.Title
			if label == "" {
				label = it.URL
			}
			lines = append(lines, fmt.Sprintf("  • %s : %s", label, it.Detail))
		}
	}
	return summaryPanel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
