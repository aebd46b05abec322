package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	accountdto "sdu/internal/modules/account/dto"
	accountin "sdu/internal/modules/account/port/in"
	benchmarkin "sdu/internal/modules/benchmark/port/in"
	probein "sdu/internal/modules/probe/port/in"
	reviewdto "sdu/internal/modules/review/dto"
	reviewin "sdu/internal/modules/review/port/in"
	specsin "sdu/internal/modules/specs/port/in"
	"sdu/internal/ui/components"
	"sdu/internal/ui/theme"
	analysisview "sdu/internal/ui/views/analysis"
	authview "sdu/internal/ui/views/auth"
	overviewview "sdu/internal/ui/views/overview"
	profileview "sdu/internal/ui/views/profile"
)

// sessionRefreshEvery is how often the stored access token is checked for
// expiry while the dashboard is open.
const sessionRefreshEvery = 30 * time.Second

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabOverview tabID = iota
	tabAnalysis
	tabCount
)

var tabLabels = [tabCount]string{"Overview", "Analysis"}

// ─── async messages ───────────────────────────────────────────────────────────

type restoredMsg struct {
	user accountdto.UserOutput
	err  error
}

type freshTickMsg struct{}

type freshDoneMsg struct{ err error }

type probeReportMsg struct {
	line string
	err  error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Profile key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Profile: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "profile")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Profile, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Profile},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns the auth gate, tab routing, the
// profile modal, and the command palette. All business logic is delegated to
// port interfaces; all rendering is delegated to sub-views.
type Model struct {
	account accountin.Usecase
	reviews reviewin.Usecase
	probes  probein.Usecase

	authView     authview.Model
	overviewView overviewview.Model
	analysisView analysisview.Model
	profileView  profileview.Model

	authed      bool
	user        accountdto.UserOutput
	activeTab   tabID
	showProfile bool
	keys        keyMap
	help        help.Model
	showHelp    bool
	palette     components.Palette
	status      string
	width       int
	height      int
}

// NewModel wires the dashboard. probes may be nil when no probe host is
// configured; the palette commands then report that instead of failing.
func NewModel(
	account accountin.Usecase,
	bench benchmarkin.Usecase,
	specs specsin.Usecase,
	reviews reviewin.Usecase,
	probes probein.Usecase,
	runCfg overviewview.Config,
) Model {
	return Model{
		account:      account,
		reviews:      reviews,
		probes:       probes,
		authView:     authview.New(account),
		overviewView: overviewview.New(specs, bench, runCfg),
		analysisView: analysisview.New(bench, specs, reviews),
		profileView:  profileview.New(account, bench),
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "signing in…",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.authView.Init(), m.restoreCmd())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.profileView.SetSize(m.width, m.height)
		m.propagateSize()
		if !m.authed {
			var cmd tea.Cmd
			m.authView, cmd = m.authView.Update(msg)
			return m, cmd
		}
		return m, nil

	case restoredMsg:
		if msg.err != nil {
			m.status = "sign in to continue"
			return m, nil
		}
		return m.enterDashboard(msg.user)

	case authview.LoginDoneMsg:
		if msg.Err == nil {
			// The auth view never sees its own success; the gate opens.
			return m.enterDashboard(msg.User)
		}
		var cmd tea.Cmd
		m.authView, cmd = m.authView.Update(msg)
		return m, cmd

	case freshTickMsg:
		return m, tea.Batch(m.ensureFreshCmd(), m.freshTickCmd())

	case freshDoneMsg:
		if msg.err != nil {
			m.status = "session refresh: " + msg.err.Error()
		}
		return m, nil

	case probeReportMsg:
		if msg.err != nil {
			m.status = "probe: " + msg.err.Error()
		} else {
			m.status = msg.line
		}
		return m, nil

	case profileview.LoggedOutMsg:
		return m.leaveDashboard("signed out")

	case profileview.DeletedMsg:
		if msg.Err != nil {
			m.status = "delete account failed: " + msg.Err.Error()
			m.profileView, _ = m.profileView.Update(msg)
			return m, nil
		}
		return m.leaveDashboard("account deleted")

	case profileview.LoadedMsg, profileview.SavedMsg:
		var cmd tea.Cmd
		m.profileView, cmd = m.profileView.Update(msg)
		return m, cmd

	// Benchmark run timers and results are routed to the overview view no
	// matter which tab is visible, so switching tabs never cancels a run.
	case overviewview.SnapshotMsg, overviewview.TickMsg, overviewview.LivePollMsg,
		overviewview.LiveMsg, overviewview.RunDoneMsg:
		var cmd tea.Cmd
		m.overviewView, cmd = m.overviewView.Update(msg)
		return m, cmd

	case overviewview.FinalizedMsg:
		var cmd tea.Cmd
		m.overviewView, cmd = m.overviewView.Update(msg)
		if msg.Err == nil {
			m.status = "benchmark saved"
			return m, tea.Batch(cmd, m.analysisView.Refresh())
		}
		return m, cmd

	case analysisview.BreakdownMsg, analysisview.ReviewsMsg,
		analysisview.ReviewSavedMsg, analysisview.ReviewDeletedMsg:
		var cmd tea.Cmd
		m.analysisView, cmd = m.analysisView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil
	}

	if !m.authed {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.authView, cmd = m.authView.Update(msg)
		return m, cmd
	}

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if handled, nm, cmd := m.handleKey(keyMsg); handled {
			return nm, cmd
		}
	}

	if m.showProfile {
		var cmd tea.Cmd
		m.profileView, cmd = m.profileView.Update(msg)
		return m, cmd
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabOverview:
		m.overviewView, tabCmd = m.overviewView.Update(msg)
	case tabAnalysis:
		m.analysisView, tabCmd = m.analysisView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// handleKey consumes global key bindings. It reports false when the key must
// fall through to the modal or the active sub-view.
func (m Model) handleKey(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return true, m, tea.Quit
	}

	if m.showHelp {
		if msg.String() == "?" || msg.String() == "esc" {
			m.showHelp = false
		}
		return true, m, nil
	}

	if m.showProfile {
		if msg.String() == "esc" && !m.profileView.Editing() && !m.profileView.Busy() {
			m.showProfile = false
			return true, m, nil
		}
		return false, m, nil
	}

	// Yield while a sub-view is capturing free-form input or a modal is up.
	if m.subViewCapturing() {
		return false, m, nil
	}

	switch msg.String() {
	case "q":
		return true, m, tea.Quit
	case "tab":
		m.activeTab = (m.activeTab + 1) % tabCount
		return true, m, nil
	case "shift+tab":
		m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		return true, m, nil
	case "?":
		m.showHelp = true
		return true, m, nil
	case ":":
		return true, m, m.palette.Open()
	case "p":
		m.showProfile = true
		var cmd tea.Cmd
		m.profileView, cmd = m.profileView.Open()
		return true, m, cmd
	}
	return false, m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if !m.authed {
		return m.authView.View()
	}

	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.showProfile:
		content = m.profileView.View()
	case m.activeTab == tabOverview:
		content = m.overviewView.View()
	default:
		content = m.analysisView.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "sdu  " + strings.Join(parts, sep)
	if m.overviewView.Running() {
		bar += theme.Warn.Render("  ● benchmark running")
	}
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.user.Username != "" {
		left = theme.Hot.Render("● "+m.user.Username) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  p:profile  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "specs:rescan":
		m.activeTab = tabOverview
		var cmd tea.Cmd
		m.overviewView, cmd = m.overviewView.Rescan()
		return m, cmd

	case "specs:analyze", "benchmark:breakdown":
		m.activeTab = tabAnalysis
		return m, m.analysisView.Refresh()

	case "benchmark:run":
		if len(parts) < 2 {
			m.status = "usage: benchmark:run <type>"
			return m, nil
		}
		m.activeTab = tabOverview
		var cmd tea.Cmd
		m.overviewView, cmd = m.overviewView.StartRun(parts[1])
		return m, cmd

	case "benchmark:history":
		m.activeTab = tabAnalysis
		m.status = "switched to Analysis tab"
		return m, nil

	case "review:add":
		text := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		if text == "" {
			m.status = "usage: review:add <text>"
			return m, nil
		}
		m.activeTab = tabAnalysis
		return m, m.addReviewCmd(text)

	case "review:edit":
		if len(parts) < 3 {
			m.status = "usage: review:edit <id> <text>"
			return m, nil
		}
		text := strings.TrimSpace(strings.TrimPrefix(input, parts[0]+" "+parts[1]))
		m.activeTab = tabAnalysis
		return m, m.editReviewCmd(parts[1], text)

	case "review:delete":
		if len(parts) < 2 {
			m.status = "usage: review:delete <id>"
			return m, nil
		}
		m.activeTab = tabAnalysis
		return m, m.deleteReviewCmd(parts[1])

	case "probe:list":
		return m, m.probeListCmd()

	case "probe:doctor":
		return m, m.probeDoctorCmd()

	case "profile:open":
		m.showProfile = true
		var cmd tea.Cmd
		m.profileView, cmd = m.profileView.Open()
		return m, cmd

	case "profile:update-email":
		if len(parts) < 2 {
			m.status = "usage: profile:update-email <email>"
			return m, nil
		}
		return m, m.updateEmailCmd(parts[1])

	case "logout":
		return m, m.logoutCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) enterDashboard(user accountdto.UserOutput) (tea.Model, tea.Cmd) {
	m.authed = true
	m.user = user
	m.status = "ready"
	m.analysisView.SetUser(user.Username)
	m.propagateSize()
	return m, tea.Batch(
		m.overviewView.Init(),
		m.analysisView.Init(),
		m.freshTickCmd(),
	)
}

func (m Model) leaveDashboard(status string) (tea.Model, tea.Cmd) {
	m.authed = false
	m.showProfile = false
	m.user = accountdto.UserOutput{}
	m.status = status
	m.authView = authview.New(m.account)
	var cmd tea.Cmd
	m.authView, cmd = m.authView.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	return m, tea.Batch(m.authView.Init(), cmd)
}

// subViewCapturing reports whether the active view is consuming free typing
// or showing its own modal, in which case global keys must yield.
func (m Model) subViewCapturing() bool {
	switch m.activeTab {
	case tabOverview:
		return m.overviewView.ModalOpen()
	case tabAnalysis:
		return m.analysisView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.overviewView, _ = m.overviewView.Update(sz)
	m.analysisView, _ = m.analysisView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) restoreCmd() tea.Cmd {
	return func() tea.Msg {
		user, err := m.account.Restore(context.Background())
		return restoredMsg{user: user, err: err}
	}
}

func (m Model) freshTickCmd() tea.Cmd {
	return tea.Tick(sessionRefreshEvery, func(time.Time) tea.Msg {
		return freshTickMsg{}
	})
}

func (m Model) ensureFreshCmd() tea.Cmd {
	return func() tea.Msg {
		return freshDoneMsg{err: m.account.EnsureFresh(context.Background())}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return profileview.LoggedOutMsg{Err: m.account.Logout(context.Background())}
	}
}

func (m Model) updateEmailCmd(email string) tea.Cmd {
	return func() tea.Msg {
		user, err := m.account.UpdateProfile(context.Background(),
			accountdto.UpdateProfileInput{Email: email})
		return profileview.SavedMsg{User: user, Err: err}
	}
}

func (m Model) probeListCmd() tea.Cmd {
	return func() tea.Msg {
		if m.probes == nil {
			return probeReportMsg{line: "no probe host configured"}
		}
		infos, err := m.probes.List(context.Background())
		if err != nil {
			return probeReportMsg{err: err}
		}
		enabled := 0
		for _, info := range infos {
			if info.Enabled {
				enabled++
			}
		}
		return probeReportMsg{line: pluralProbes(len(infos), enabled)}
	}
}

func (m Model) probeDoctorCmd() tea.Cmd {
	return func() tea.Msg {
		if m.probes == nil {
			return probeReportMsg{line: "no probe host configured"}
		}
		results, err := m.probes.Doctor(context.Background())
		if err != nil {
			return probeReportMsg{err: err}
		}
		healthy := 0
		for _, r := range results {
			if r.ChecksumValid && r.BinaryReachable && r.LifecycleOK {
				healthy++
			}
		}
		return probeReportMsg{line: pluralDoctor(healthy, len(results))}
	}
}

// The review palette commands resolve through the review port and feed the
// analysis view's own message types so its list refreshes like any other edit.

func (m Model) addReviewCmd(text string) tea.Cmd {
	username := m.user.Username
	return func() tea.Msg {
		review, err := m.reviews.Add(context.Background(), reviewdto.AddInput{
			Username: username,
			Comment:  text,
		})
		return analysisview.ReviewSavedMsg{Review: review, Err: err}
	}
}

func (m Model) editReviewCmd(id, text string) tea.Cmd {
	username := m.user.Username
	return func() tea.Msg {
		review, err := m.reviews.Edit(context.Background(), reviewdto.EditInput{
			Username: username,
			ReviewID: id,
			Comment:  text,
		})
		return analysisview.ReviewSavedMsg{Review: review, Err: err}
	}
}

func (m Model) deleteReviewCmd(id string) tea.Cmd {
	username := m.user.Username
	return func() tea.Msg {
		err := m.reviews.Delete(context.Background(), reviewdto.DeleteInput{
			Username: username,
			ReviewID: id,
		})
		return analysisview.ReviewDeletedMsg{Err: err}
	}
}

func pluralProbes(total, enabled int) string {
	noun := "probes"
	if total == 1 {
		noun = "probe"
	}
	return fmt.Sprintf("%d %s configured (%d enabled)", total, noun, enabled)
}

func pluralDoctor(healthy, total int) string {
	return fmt.Sprintf("%d/%d probes healthy", healthy, total)
}
