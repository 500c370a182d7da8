// Package tui provides a Bubble Tea terminal user interface for audiodex.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/audiodex/internal/catalog"
	"github.com/handiism/audiodex/internal/config"
	"github.com/handiism/audiodex/internal/export"
	"github.com/handiism/audiodex/internal/model"
	"github.com/handiism/audiodex/internal/scan"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	recordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateScanning
	StateBrowse
	StateError
)

// sortKeys is the cycle order for the sort keybinding.
var sortKeys = []string{
	catalog.SortArtist,
	catalog.SortTitle,
	catalog.SortAlbum,
	catalog.SortDuration,
	catalog.SortFileSize,
	catalog.SortCreationTime,
}

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   scan.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	settings  *config.Settings
	logs      []LogEntry
	err       error

	// Scan context
	ctx    context.Context
	cancel context.CancelFunc

	progressCh chan scan.ProgressEvent

	// Catalog state after a scan
	catalog *catalog.Catalog
	result  *scan.Result

	// Browse state
	sortIndex int
	grouping  int // 0 none, 1 artist, 2 album
	searching bool
	query     string

	// Options
	dedup   bool
	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel() Model {
	ti := textinput.New()
	ti.Placeholder = "/path/to/music"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	ctx, cancel := context.WithCancel(context.Background())

	settings := config.DefaultSettings()
	ti.SetValue(settings.CacheDirectory)

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent when scan progress updates.
	ProgressMsg struct {
		Event scan.ProgressEvent
	}

	// ScanDoneMsg is sent when the scan completes.
	ScanDoneMsg struct {
		Catalog *catalog.Catalog
		Result  *scan.Result
		Err     error
	}

	// ExportDoneMsg is sent after an export attempt.
	ExportDoneMsg struct {
		Path string
		Err  error
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if newModel, cmd, handled := m.handleKey(msg); handled {
			return newModel, cmd
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		if msg.Event.Level == scan.LevelVerbose && !m.verbose {
			return m, m.listenProgress()
		}
		m.logs = append(m.logs, LogEntry{Message: msg.Event.Message, Level: msg.Event.Level})
		// Keep only last 10 logs
		if len(m.logs) > 10 {
			m.logs = m.logs[len(m.logs)-10:]
		}
		return m, m.listenProgress()

	case ScanDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.catalog = msg.Catalog
			m.result = msg.Result
			m.catalog.Sort(sortKeys[m.sortIndex])
			m.state = StateBrowse
		}

	case ExportDoneMsg:
		if msg.Err != nil {
			m.logs = append(m.logs, LogEntry{Message: fmt.Sprintf("Export failed: %v", msg.Err), Level: scan.LevelError})
		} else {
			m.logs = append(m.logs, LogEntry{Message: fmt.Sprintf("Wrote %s", msg.Path), Level: scan.LevelInfo})
		}
	}

	// Update text input while it has focus
	if m.state == StateInput || m.searching {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKey processes key presses. The third return reports whether the
// key was consumed.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		m.cancel()
		return m, tea.Quit, true

	case "esc":
		switch m.state {
		case StateInput:
			return m, tea.Quit, true
		case StateScanning:
			m.cancel()
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
			return m, nil, true
		case StateBrowse:
			if m.searching {
				m.searching = false
				m.query = ""
			}
			return m, nil, true
		}

	case "enter":
		if m.state == StateInput && m.textInput.Value() != "" {
			m.state = StateScanning
			m.progressCh = make(chan scan.ProgressEvent, 64)
			return m, tea.Batch(m.startScan(m.textInput.Value()), m.listenProgress(), m.spinner.Tick), true
		}
		if m.state == StateBrowse && m.searching {
			m.query = m.textInput.Value()
			m.searching = false
			return m, nil, true
		}
	}

	if m.state == StateInput {
		switch msg.String() {
		case "ctrl+d":
			m.dedup = !m.dedup
			return m, nil, true
		case "ctrl+v":
			m.verbose = !m.verbose
			return m, nil, true
		}
		return m, nil, false
	}

	if m.state == StateBrowse && !m.searching {
		switch msg.String() {
		case "q":
			return m, tea.Quit, true
		case "s":
			m.sortIndex = (m.sortIndex + 1) % len(sortKeys)
			m.catalog.Sort(sortKeys[m.sortIndex])
			return m, nil, true
		case "g":
			m.grouping = (m.grouping + 1) % 3
			return m, nil, true
		case "d":
			removed := m.catalog.Deduplicate()
			m.logs = append(m.logs, LogEntry{
				Message: fmt.Sprintf("Removed %d duplicates", len(removed)),
				Level:   scan.LevelInfo,
			})
			return m, nil, true
		case "/":
			m.searching = true
			m.textInput.SetValue("")
			m.textInput.Placeholder = "search title, artist, album, filename"
			m.textInput.Focus()
			return m, nil, true
		case "e":
			return m, m.exportJSON(), true
		case "p":
			return m, m.exportPlaylist(), true
		case "r":
			m.state = StateInput
			m.logs = nil
			m.err = nil
			m.catalog = nil
			m.result = nil
			m.query = ""
			m.ctx, m.cancel = context.WithCancel(context.Background())
			m.textInput.Placeholder = "/path/to/music"
			m.textInput.SetValue(m.settings.CacheDirectory)
			m.textInput.Focus()
			return m, nil, true
		}
	}

	if m.state == StateError {
		switch msg.String() {
		case "q":
			return m, tea.Quit, true
		case "r":
			m.state = StateInput
			m.err = nil
			m.logs = nil
			m.ctx, m.cancel = context.WithCancel(context.Background())
			m.textInput.Focus()
			return m, nil, true
		}
	}

	return m, nil, false
}

// startScan runs the scan off the UI goroutine.
func (m Model) startScan(dir string) tea.Cmd {
	ctx := m.ctx
	settings := m.settings
	dedup := m.dedup
	ch := m.progressCh

	return func() tea.Msg {
		cat := catalog.New()
		scanner := scan.NewScanner(cat, scan.Options{
			Extensions: settings.Extensions,
			Workers:    settings.WorkerCount,
			OnProgress: func(event scan.ProgressEvent) {
				select {
				case ch <- event:
				default: // UI fell behind; drop rather than stall the scan
				}
			},
		})
		result, err := scanner.Scan(ctx, dir)
		close(ch)
		if err == nil && dedup {
			cat.Deduplicate()
		}
		return ScanDoneMsg{Catalog: cat, Result: result, Err: err}
	}
}

// listenProgress forwards one progress event from the scan goroutine.
func (m Model) listenProgress() tea.Cmd {
	ch := m.progressCh
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

func (m Model) exportJSON() tea.Cmd {
	cat := m.catalog
	dir := m.textInput.Value()
	path := m.settings.ExportPath
	return func() tea.Msg {
		err := export.NewJSONExporter(dir).Export(cat, time.Now().UTC(), path)
		return ExportDoneMsg{Path: path, Err: err}
	}
}

func (m Model) exportPlaylist() tea.Cmd {
	cat := m.catalog
	format := export.ParseFormat(m.settings.PlaylistFormat)
	path := m.settings.PlaylistPath
	return func() tea.Msg {
		err := export.NewPlaylistWriter(format).Write(cat.Records(), path)
		return ExportDoneMsg{Path: path, Err: err}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("audiodex"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Catalog your music directory"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateScanning:
		b.WriteString(m.viewScanning())
	case StateBrowse:
		b.WriteString(m.viewBrowse())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Directory to scan:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	dedupCheck := "[ ]"
	if m.dedup {
		dedupCheck = "[x]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[x]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Remove duplicates after scan (ctrl+d)\n", dedupCheck))
	b.WriteString(fmt.Sprintf("  %s Verbose output (ctrl+v)\n", verboseCheck))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewScanning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Scanning..."))
	b.WriteString("\n\n")
	b.WriteString(m.viewLogs())

	return b.String()
}

func (m Model) viewBrowse() string {
	var b strings.Builder

	if m.result != nil {
		b.WriteString(successStyle.Render(fmt.Sprintf(
			"%d files scanned, %d errors", m.result.TotalFiles, m.result.ErrorCount)))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("sort: %s", sortKeys[m.sortIndex])))
	if m.query != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  filter: %q", m.query)))
	}
	b.WriteString("\n\n")

	if m.searching {
		b.WriteString(subtitleStyle.Render("Search: "))
		b.WriteString(m.textInput.View())
		b.WriteString("\n\n")
	}

	records := m.catalog.Records()
	if m.query != "" {
		records = m.catalog.Search(m.query)
	}

	switch m.grouping {
	case 1:
		b.WriteString(m.viewGroups(m.catalog.GroupByArtist()))
	case 2:
		b.WriteString(m.viewGroups(m.catalog.GroupByAlbum()))
	default:
		b.WriteString(m.viewRecords(records))
	}

	if stats, err := m.catalog.Statistics(); err == nil {
		b.WriteString("\n")
		b.WriteString(infoStyle.Render(fmt.Sprintf(
			"Total %s, %s, success rate %.0f%%",
			stats.FormatDuration(), stats.FormatSize(), stats.SuccessRate*100)))
		b.WriteString("\n")
	}
	b.WriteString(m.viewLogs())

	return b.String()
}

func (m Model) viewRecords(records []*model.Record) string {
	var b strings.Builder

	limit := m.listHeight()
	for i, rec := range records {
		if i >= limit {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ... and %d more\n", len(records)-limit)))
			break
		}
		b.WriteString(recordStyle.Render("  " + rec.DisplayLabel()))
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %s  %s",
			model.FormatDuration(rec.DurationOr(0)), model.FormatSize(rec.FileSize))))
		b.WriteString("\n")
	}
	if len(records) == 0 {
		b.WriteString(dimStyle.Render("  (no records)\n"))
	}
	return b.String()
}

func (m Model) viewGroups(groups []catalog.Group) string {
	var b strings.Builder

	limit := m.listHeight()
	lines := 0
	for _, group := range groups {
		if lines >= limit {
			b.WriteString(dimStyle.Render("  ...\n"))
			break
		}
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("%s (%d)", group.Key, len(group.Records))))
		b.WriteString("\n")
		lines++
	}
	return b.String()
}

func (m Model) listHeight() int {
	h := m.height - 12
	if h < 5 {
		h = 5
	}
	return h
}

func (m Model) viewLogs() string {
	var b strings.Builder
	for _, entry := range m.logs {
		style := dimStyle
		switch entry.Level {
		case scan.LevelError:
			style = errorStyle
		case scan.LevelWarning:
			style = warningStyle
		case scan.LevelInfo:
			style = infoStyle
		}
		b.WriteString(style.Render("  " + entry.Message))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder
	b.WriteString(errorStyle.Render("Error: "))
	if m.err != nil {
		b.WriteString(m.err.Error())
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: scan • esc: quit"
	case StateScanning:
		return "esc: cancel"
	case StateBrowse:
		if m.searching {
			return "enter: apply filter • esc: clear"
		}
		return "s: sort • /: search • g: group • d: dedup • e: export json • p: playlist • r: rescan • q: quit"
	case StateError:
		return "r: retry • q: quit"
	}
	return ""
}

// Run starts the TUI program.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
