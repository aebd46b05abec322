package overview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	benchmarkdto "sdu/internal/modules/benchmark/dto"
	specsdto "sdu/internal/modules/specs/dto"
	"sdu/internal/ui/components"
	"sdu/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type SpecsPort interface {
	Get(ctx context.Context) (specsdto.SnapshotOutput, error)
	Rescan(ctx context.Context) (specsdto.SnapshotOutput, error)
}

type BenchmarkPort interface {
	Run(ctx context.Context, input benchmarkdto.RunInput) (benchmarkdto.ResultOutput, error)
	Finalize(ctx context.Context, result benchmarkdto.ResultOutput) (benchmarkdto.ResultOutput, error)
	Live(ctx context.Context) (benchmarkdto.LiveOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────
// Exported so the app model can route them here regardless of the active tab:
// an in-flight run must keep ticking while the user looks at Analysis.

type SnapshotMsg struct {
	Snapshot specsdto.SnapshotOutput
	Err      error
}

type TickMsg struct{ Serial int }

type LivePollMsg struct{ Serial int }

type LiveMsg struct {
	Serial int
	Sample benchmarkdto.LiveOutput
	Err    error
}

type RunDoneMsg struct {
	Serial int
	Result benchmarkdto.ResultOutput
	Err    error
}

type FinalizedMsg struct {
	Result benchmarkdto.ResultOutput
	Err    error
}

// ─── run phase ───────────────────────────────────────────────────────────────

type runPhase int

const (
	phaseIdle runPhase = iota
	phaseTypeSelect
	phaseRunning
	phaseComplete
)

const (
	localStep    = 2
	remoteStep   = 3
	remoteCap    = 90
	remoteTick   = 600 * time.Millisecond
	liveWindow   = 15
	liveTempMin  = 40.0
	liveTempMax  = 95.0
	livePctMin   = 0.0
	livePctMax   = 100.0
	runTypeWidth = 24
)

// runTypes is the selection order shown in the modal; the benchmark usecase
// rejects anything it does not recognize.
var runTypes = []string{"cpu", "gpu", "hybrid", "gaming", "office", "editing", "ai-ml"}

// Config carries the timing knobs resolved by bootstrap from config.yaml.
type Config struct {
	ProgressTick time.Duration
	LivePoll     time.Duration
	Networked    bool
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	specs SpecsPort
	bench BenchmarkPort
	cfg   Config

	snapshot specsdto.SnapshotOutput
	loading  bool
	spinner  spinner.Model

	// benchmark modal state
	phase     runPhase
	types     []string
	typeIdx   int
	runSerial int
	runType   string
	prog      progress.Model
	percent   float64
	gotResult bool
	result    benchmarkdto.ResultOutput
	window    []benchmarkdto.LiveOutput

	statusLine string
	width      int
	height     int
}

func New(specs SpecsPort, bench BenchmarkPort, cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Violet)

	return Model{
		specs:   specs,
		bench:   bench,
		cfg:     cfg,
		loading: true,
		spinner: sp,
		types:   runTypes,
		prog:    progress.New(progress.WithDefaultGradient()),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSnapshotCmd(false), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.prog.Width = min(m.width/2, 50)
		return m, nil

	case SnapshotMsg:
		m.loading = false
		if msg.Err != nil {
			m.statusLine = "spec scan failed: " + msg.Err.Error()
			return m, nil
		}
		m.snapshot = msg.Snapshot
		m.statusLine = ""
		return m, nil

	case TickMsg:
		return m.onTick(msg)

	case LivePollMsg:
		if msg.Serial != m.runSerial || m.phase != phaseRunning {
			return m, nil
		}
		return m, tea.Batch(m.sampleCmd(msg.Serial), m.livePollCmd(msg.Serial))

	case LiveMsg:
		if msg.Serial != m.runSerial || m.phase != phaseRunning || msg.Err != nil {
			return m, nil
		}
		m.window = append(m.window, msg.Sample)
		if len(m.window) > liveWindow {
			m.window = m.window[len(m.window)-liveWindow:]
		}
		return m, nil

	case RunDoneMsg:
		return m.onRunDone(msg)

	case FinalizedMsg:
		if msg.Err != nil {
			m.statusLine = "save result failed: " + msg.Err.Error()
		} else {
			m.result = msg.Result
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.onKey(msg)
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Scanning hardware…")
	}
	if m.phase != phaseIdle {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderModal())
	}

	cards := m.renderSpecCards()
	footer := theme.Muted.Render("r:re-scan  b:run benchmark")
	if m.statusLine != "" {
		footer = theme.Bad.Render(m.statusLine) + "  " + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards, "", footer)
}

// Running reports whether a benchmark run is in flight. Tab switches must
// leave it undisturbed, so the app model checks this before rerouting keys.
func (m Model) Running() bool { return m.phase == phaseRunning }

// ModalOpen reports whether the benchmark modal covers the view.
func (m Model) ModalOpen() bool { return m.phase != phaseIdle }

// OpenRunModal enters type selection, e.g. from the command palette.
func (m Model) OpenRunModal() Model {
	if m.phase == phaseIdle {
		m.phase = phaseTypeSelect
	}
	return m
}

// StartRun launches a run for the given type directly, bypassing selection.
func (m Model) StartRun(typ string) (Model, tea.Cmd) {
	if m.phase == phaseRunning {
		m.statusLine = "a benchmark is already running"
		return m, nil
	}
	return m.startRun(typ)
}

// Rescan triggers a fresh hardware collection.
func (m Model) Rescan() (Model, tea.Cmd) {
	m.loading = true
	return m, tea.Batch(m.loadSnapshotCmd(true), m.spinner.Tick)
}

// ─── update helpers ──────────────────────────────────────────────────────────

func (m Model) onKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.phase {
	case phaseIdle:
		switch msg.String() {
		case "r":
			return m.Rescan()
		case "b":
			m.phase = phaseTypeSelect
			m.typeIdx = 0
		}

	case phaseTypeSelect:
		switch msg.String() {
		case "esc":
			m.phase = phaseIdle
		case "up", "k":
			m.typeIdx = (m.typeIdx + len(m.types) - 1) % len(m.types)
		case "down", "j":
			m.typeIdx = (m.typeIdx + 1) % len(m.types)
		case "enter":
			return m.startRun(m.types[m.typeIdx])
		}

	case phaseRunning:
		if msg.String() == "esc" {
			return m.cancelRun(), nil
		}

	case phaseComplete:
		switch msg.String() {
		case "esc", "enter":
			m.phase = phaseIdle
			m.window = nil
		}
	}
	return m, nil
}

// startRun bumps the serial so ticks and results from any previous run are
// dropped, then launches the run, the progress ticker, and the live poll.
func (m Model) startRun(typ string) (Model, tea.Cmd) {
	m.runSerial++
	m.runType = typ
	m.phase = phaseRunning
	m.percent = 0
	m.gotResult = false
	m.result = benchmarkdto.ResultOutput{}
	m.window = nil
	m.statusLine = ""
	return m, tea.Batch(
		m.runCmd(m.runSerial, typ),
		m.tickCmd(m.runSerial),
		m.livePollCmd(m.runSerial),
	)
}

// cancelRun abandons the in-flight run. Nothing was finalized, so nothing is
// persisted; the stale serial makes any late tick or result a no-op.
func (m Model) cancelRun() Model {
	m.runSerial++
	m.phase = phaseIdle
	m.percent = 0
	m.gotResult = false
	m.result = benchmarkdto.ResultOutput{}
	m.window = nil
	m.statusLine = "benchmark cancelled"
	return m
}

func (m Model) onTick(msg TickMsg) (Model, tea.Cmd) {
	if msg.Serial != m.runSerial || m.phase != phaseRunning {
		return m, nil
	}
	if m.cfg.Networked {
		m.percent = min(m.percent+remoteStep, remoteCap)
		return m, m.tickCmd(msg.Serial)
	}
	m.percent = min(m.percent+localStep, 100)
	if m.percent >= 100 && m.gotResult {
		return m.complete()
	}
	return m, m.tickCmd(msg.Serial)
}

func (m Model) onRunDone(msg RunDoneMsg) (Model, tea.Cmd) {
	if msg.Serial != m.runSerial || m.phase != phaseRunning {
		return m, nil
	}
	if msg.Err != nil {
		m.phase = phaseTypeSelect
		m.percent = 0
		m.window = nil
		m.statusLine = "benchmark failed: " + msg.Err.Error()
		return m, nil
	}
	m.gotResult = true
	m.result = msg.Result
	if m.cfg.Networked {
		m.percent = 100
		return m.complete()
	}
	if m.percent >= 100 {
		return m.complete()
	}
	return m, nil
}

// complete leaves the running phase, which makes the remaining timers inert,
// and records the result exactly once.
func (m Model) complete() (Model, tea.Cmd) {
	m.phase = phaseComplete
	return m, m.finalizeCmd(m.result)
}

// ─── view helpers ────────────────────────────────────────────────────────────

func (m Model) renderSpecCards() string {
	s := m.snapshot
	cardW := max((m.width-8)/3, 26)

	cpu := specCard("CPU", cardW,
		s.CPU.Model,
		fmt.Sprintf("%d cores / %d threads", s.CPU.Cores, s.CPU.Threads),
		usageLine(s.CPU.UsagePct))
	gpu := specCard("GPU", cardW,
		s.GPU.Model,
		fmt.Sprintf("%d GB VRAM", s.GPU.VRAMGB),
		usageLine(s.GPU.UsagePct))
	ram := specCard("RAM", cardW,
		fmt.Sprintf("%d GB %s", s.RAM.TotalGB, s.RAM.Speed),
		"",
		usageLine(s.RAM.UsagePct))
	storage := specCard("Storage", cardW,
		fmt.Sprintf("%s %d GB", s.Storage.Kind, s.Storage.TotalGB),
		"",
		usageLine(s.Storage.UsagePct))
	osCard := specCard("System", cardW,
		s.OS,
		"",
		theme.Muted.Render("scanned "+s.CollectedAt.Format("15:04:05")))

	top := lipgloss.JoinHorizontal(lipgloss.Top, cpu, gpu, ram)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, storage, osCard)
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

func specCard(title string, width int, lines ...string) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(title) + "\n")
	for _, line := range lines {
		if line != "" {
			sb.WriteString(line + "\n")
		}
	}
	return theme.Pane.Width(width).Render(strings.TrimRight(sb.String(), "\n"))
}

func usageLine(pct float64) string {
	style := theme.Good
	switch {
	case pct >= 85:
		style = theme.Bad
	case pct >= 60:
		style = theme.Warn
	}
	return theme.Muted.Render("usage ") + style.Render(fmt.Sprintf("%.0f%%", pct))
}

func (m Model) renderModal() string {
	var sb strings.Builder
	switch m.phase {
	case phaseTypeSelect:
		sb.WriteString(theme.Title.Render("Run Benchmark") + "\n\n")
		for i, t := range m.types {
			if i == m.typeIdx {
				sb.WriteString(theme.Hot.Render("▸ "+t) + "\n")
			} else {
				sb.WriteString(theme.Muted.Render("  "+t) + "\n")
			}
		}
		if m.statusLine != "" {
			sb.WriteString("\n" + theme.Bad.Render(m.statusLine))
		}
		sb.WriteString("\n" + theme.Muted.Render("enter:start  esc:close"))

	case phaseRunning:
		sb.WriteString(theme.Title.Render("Running "+m.runType+" benchmark") + "\n\n")
		sb.WriteString(m.prog.ViewAs(m.percent/100) + "\n\n")
		sb.WriteString(m.renderLiveWindow() + "\n")
		sb.WriteString(theme.Muted.Render("esc:cancel"))

	case phaseComplete:
		r := m.result
		sb.WriteString(theme.Title.Render("Benchmark Complete") + "\n\n")
		sb.WriteString(fmt.Sprintf("overall  %s\n", theme.Hot.Render(fmt.Sprintf("%d", r.OverallScore))))
		sb.WriteString(fmt.Sprintf("cpu      %d\n", r.CPUScore))
		sb.WriteString(fmt.Sprintf("gpu      %d\n", r.GPUScore))
		sb.WriteString(fmt.Sprintf("ram      %d\n", r.RAMScore))
		sb.WriteString(fmt.Sprintf("avg temp %.1f°C\n", r.AvgTemp))
		if m.statusLine != "" {
			sb.WriteString("\n" + theme.Bad.Render(m.statusLine))
		}
		sb.WriteString("\n" + theme.Muted.Render("enter:close"))
	}
	return theme.PaneActive.Width(max(runTypeWidth*2, m.prog.Width+4)).Render(sb.String())
}

func (m Model) renderLiveWindow() string {
	if len(m.window) == 0 {
		return theme.Muted.Render("waiting for live metrics…")
	}
	cpus := make([]float64, len(m.window))
	gpus := make([]float64, len(m.window))
	temps := make([]float64, len(m.window))
	for i, s := range m.window {
		cpus[i] = s.CPU
		gpus[i] = s.GPU
		temps[i] = s.Temp
	}
	last := m.window[len(m.window)-1]
	var sb strings.Builder
	sb.WriteString(theme.Muted.Render("cpu  ") + components.Sparkline(cpus, livePctMin, livePctMax) +
		fmt.Sprintf(" %.0f%%\n", last.CPU))
	sb.WriteString(theme.Muted.Render("gpu  ") + components.Sparkline(gpus, livePctMin, livePctMax) +
		fmt.Sprintf(" %.0f%%\n", last.GPU))
	sb.WriteString(theme.Muted.Render("temp ") + components.Sparkline(temps, liveTempMin, liveTempMax) +
		fmt.Sprintf(" %.1f°C\n", last.Temp))
	return sb.String()
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) loadSnapshotCmd(rescan bool) tea.Cmd {
	return func() tea.Msg {
		var (
			snap specsdto.SnapshotOutput
			err  error
		)
		if rescan {
			snap, err = m.specs.Rescan(context.Background())
		} else {
			snap, err = m.specs.Get(context.Background())
		}
		return SnapshotMsg{Snapshot: snap, Err: err}
	}
}

func (m Model) runCmd(serial int, typ string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.bench.Run(context.Background(), benchmarkdto.RunInput{Type: typ})
		return RunDoneMsg{Serial: serial, Result: result, Err: err}
	}
}

func (m Model) finalizeCmd(result benchmarkdto.ResultOutput) tea.Cmd {
	return func() tea.Msg {
		out, err := m.bench.Finalize(context.Background(), result)
		return FinalizedMsg{Result: out, Err: err}
	}
}

func (m Model) tickCmd(serial int) tea.Cmd {
	interval := m.cfg.ProgressTick
	if m.cfg.Networked {
		interval = remoteTick
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return TickMsg{Serial: serial}
	})
}

func (m Model) livePollCmd(serial int) tea.Cmd {
	return tea.Tick(m.cfg.LivePoll, func(time.Time) tea.Msg {
		return LivePollMsg{Serial: serial}
	})
}

func (m Model) sampleCmd(serial int) tea.Cmd {
	return func() tea.Msg {
		sample, err := m.bench.Live(context.Background())
		return LiveMsg{Serial: serial, Sample: sample, Err: err}
	}
}
