package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	benchmarkdto "sdu/internal/modules/benchmark/dto"
	reviewdto "sdu/internal/modules/review/dto"
	specsdto "sdu/internal/modules/specs/dto"
	apperrors "sdu/internal/platform/errors"
	"sdu/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type BenchmarkPort interface {
	List(ctx context.Context) ([]benchmarkdto.ResultOutput, error)
	Breakdown(ctx context.Context) (benchmarkdto.BreakdownOutput, error)
}

type SpecsPort interface {
	Analyze(ctx context.Context) (specsdto.AnalysisOutput, error)
}

type ReviewPort interface {
	Add(ctx context.Context, input reviewdto.AddInput) (reviewdto.ReviewOutput, error)
	Edit(ctx context.Context, input reviewdto.EditInput) (reviewdto.ReviewOutput, error)
	Delete(ctx context.Context, input reviewdto.DeleteInput) error
	List(ctx context.Context, username string) ([]reviewdto.ReviewOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type BreakdownMsg struct {
	Breakdown benchmarkdto.BreakdownOutput
	Analysis  specsdto.AnalysisOutput
	Results   []benchmarkdto.ResultOutput
	Err       error
}

type ReviewsMsg struct {
	Reviews []reviewdto.ReviewOutput
	Err     error
}

type ReviewSavedMsg struct {
	Review reviewdto.ReviewOutput
	Err    error
}

type ReviewDeletedMsg struct{ Err error }

// ─── sub-tab ─────────────────────────────────────────────────────────────────

type subTab int

const (
	subTabBreakdown subTab = iota
	subTabHistory
	subTabReviews
)

// ─── list items ──────────────────────────────────────────────────────────────

type resultItem struct{ r benchmarkdto.ResultOutput }

func (i resultItem) Title() string {
	return fmt.Sprintf("%s — %d", i.r.BenchmarkType, i.r.OverallScore)
}

func (i resultItem) Description() string {
	return fmt.Sprintf("cpu %d  gpu %d  ram %d  %s",
		i.r.CPUScore, i.r.GPUScore, i.r.RAMScore, i.r.CreatedAt.Format("2006-01-02 15:04"))
}

func (i resultItem) FilterValue() string { return i.r.BenchmarkType }

type reviewItem struct{ r reviewdto.ReviewOutput }

func (i reviewItem) Title() string {
	if i.r.Own {
		return i.r.User + " (you)"
	}
	return i.r.User
}

func (i reviewItem) Description() string { return i.r.Comment }
func (i reviewItem) FilterValue() string { return i.r.User + " " + i.r.Comment }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	bench   BenchmarkPort
	specs   SpecsPort
	reviews ReviewPort

	username  string
	activeTab subTab
	list      list.Model
	detail    viewport.Model
	input     textinput.Model
	editingID string
	composing bool

	breakdown benchmarkdto.BreakdownOutput
	analysis  specsdto.AnalysisOutput
	results   []benchmarkdto.ResultOutput
	reviewSet []reviewdto.ReviewOutput

	statusLine string
	width      int
	height     int
}

func New(bench BenchmarkPort, specs SpecsPort, reviews ReviewPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Violet).BorderForeground(theme.Violet)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Cyan).BorderForeground(theme.Violet)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "My Benchmarks"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1)

	ti := textinput.New()
	ti.Placeholder = "write a review…"
	ti.CharLimit = 500

	return Model{
		bench:   bench,
		specs:   specs,
		reviews: reviews,
		list:    l,
		detail:  vp,
		input:   ti,
	}
}

// SetUser records the authenticated username used for review ownership.
func (m *Model) SetUser(username string) { m.username = username }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadBreakdownCmd(), m.loadReviewsCmd())
}

// Refresh reloads scores and history, e.g. after a benchmark completes.
func (m Model) Refresh() tea.Cmd {
	return m.loadBreakdownCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case BreakdownMsg:
		if msg.Err != nil {
			m.statusLine = "analysis load failed: " + msg.Err.Error()
		} else {
			m.breakdown = msg.Breakdown
			m.analysis = msg.Analysis
			m.results = msg.Results
			m.statusLine = ""
			if m.activeTab == subTabHistory {
				cmds = append(cmds, m.list.SetItems(resultsToItems(m.results)))
			}
		}
		m.detail.SetContent(m.renderBreakdown())

	case ReviewsMsg:
		if msg.Err != nil {
			m.statusLine = "reviews load failed: " + msg.Err.Error()
			break
		}
		m.reviewSet = msg.Reviews
		if m.activeTab == subTabReviews {
			cmds = append(cmds, m.list.SetItems(reviewsToItems(m.reviewSet)))
		}

	case ReviewSavedMsg:
		m.composing = false
		m.editingID = ""
		m.input.Blur()
		m.input.SetValue("")
		// Editing a review someone already removed is a no-op; the reload
		// makes the list catch up without an error banner.
		if msg.Err != nil && !errors.Is(msg.Err, apperrors.ErrNotFound) {
			m.statusLine = "review save failed: " + msg.Err.Error()
		} else {
			m.statusLine = ""
			cmds = append(cmds, m.loadReviewsCmd())
		}

	case ReviewDeletedMsg:
		if msg.Err != nil && !errors.Is(msg.Err, apperrors.ErrNotFound) {
			m.statusLine = "review delete failed: " + msg.Err.Error()
		} else {
			cmds = append(cmds, m.loadReviewsCmd())
		}

	case tea.KeyMsg:
		if m.composing {
			return m.updateCompose(msg)
		}
		switch msg.String() {
		case "1":
			m.activeTab = subTabBreakdown
		case "2":
			m.activeTab = subTabHistory
			m.list.Title = "My Benchmarks"
			cmds = append(cmds, m.list.SetItems(resultsToItems(m.results)))
		case "3":
			m.activeTab = subTabReviews
			m.list.Title = "Community Reviews"
			cmds = append(cmds, m.list.SetItems(reviewsToItems(m.reviewSet)))
		case "R":
			cmds = append(cmds, m.loadBreakdownCmd(), m.loadReviewsCmd())
		case "a":
			if m.activeTab == subTabReviews {
				m.composing = true
				m.editingID = ""
				m.input.SetValue("")
				cmds = append(cmds, m.input.Focus())
			}
		case "e":
			if m.activeTab == subTabReviews {
				if r, ok := m.selectedReview(); ok {
					if !r.Own {
						m.statusLine = "you can only edit your own review"
						break
					}
					m.composing = true
					m.editingID = r.ID
					m.input.SetValue(r.Comment)
					cmds = append(cmds, m.input.Focus())
				}
			}
		case "d":
			if m.activeTab == subTabReviews {
				if r, ok := m.selectedReview(); ok {
					if !r.Own {
						m.statusLine = "you can only delete your own review"
						break
					}
					cmds = append(cmds, m.deleteReviewCmd(r.ID))
				}
			}
		}
	}

	if !m.composing {
		switch m.activeTab {
		case subTabBreakdown:
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			cmds = append(cmds, cmd)
		default:
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updateCompose(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.composing = false
		m.editingID = ""
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	case "enter":
		text := m.input.Value()
		if m.editingID != "" {
			return m, m.editReviewCmd(m.editingID, text)
		}
		return m, m.addReviewCmd(text)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Filtering reports whether the list filter or review composer consumes keys.
func (m Model) Filtering() bool {
	return m.composing || m.list.FilterState() == list.Filtering
}

func (m Model) View() string {
	tabs := m.renderSubTabs()
	tabH := lipgloss.Height(tabs)
	bodyH := m.height - tabH
	if bodyH < 1 {
		bodyH = 1
	}

	var body string
	switch m.activeTab {
	case subTabBreakdown:
		body = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Surface1).
			Background(theme.Mantle).
			Width(m.width - 2).
			Height(bodyH - 2).
			Render(m.detail.View())
	case subTabReviews:
		composer := ""
		if m.composing {
			label := "add"
			if m.editingID != "" {
				label = "edit"
			}
			composer = theme.Hot.Render(label+" ") + m.input.View()
		} else {
			composer = theme.Muted.Render("a:add  e:edit  d:delete (own reviews only)")
		}
		if m.statusLine != "" {
			composer += "  " + theme.Bad.Render(m.statusLine)
		}
		listPane := lipgloss.NewStyle().Width(m.width).Height(bodyH - 1).Render(m.list.View())
		body = lipgloss.JoinVertical(lipgloss.Left, listPane, composer)
	default:
		body = lipgloss.NewStyle().Width(m.width).Height(bodyH).Render(m.list.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabs, body)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	contentH := m.height - 3
	if contentH < 1 {
		contentH = 1
	}
	m.list.SetSize(m.width, contentH)
	m.detail.Width = m.width - 4
	m.detail.Height = contentH - 2
	m.input.Width = m.width - 12
}

func (m Model) renderSubTabs() string {
	labels := []string{"1:Breakdown", "2:History", "3:Reviews"}
	var parts []string
	for i, label := range labels {
		if subTab(i) == m.activeTab {
			parts = append(parts, theme.Hot.Render(" "+label+" "))
		} else {
			parts = append(parts, theme.Muted.Render(" "+label+" "))
		}
	}
	hint := theme.Muted.Render("  R:reload")
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...) + hint + "\n"
}

func (m Model) renderBreakdown() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Bottleneck Breakdown") + "\n\n")
	if len(m.results) == 0 {
		sb.WriteString(theme.Muted.Render("Run a benchmark to see your breakdown.") + "\n\n")
	} else {
		sb.WriteString(scoreBar("cpu ", m.breakdown.CPU))
		sb.WriteString(scoreBar("gpu ", m.breakdown.GPU))
		sb.WriteString(scoreBar("ram ", m.breakdown.RAM))
		sb.WriteString(scoreBar("temp", m.breakdown.Temp))
		latest := m.results[0]
		sb.WriteString(fmt.Sprintf("\nlatest: %s  overall %s  avg temp %.1f°C\n",
			latest.BenchmarkType,
			theme.Hot.Render(fmt.Sprintf("%d", latest.OverallScore)),
			latest.AvgTemp))
	}

	sb.WriteString("\n" + theme.Title.Render("System Health") + "\n\n")
	sb.WriteString("overall: " + healthStyle(m.analysis.OverallHealth).Render(m.analysis.OverallHealth) + "\n")
	if len(m.analysis.Issues) > 0 {
		sb.WriteString("\nissues:\n")
		for _, issue := range m.analysis.Issues {
			sb.WriteString(theme.Bad.Render("  ✗ ") + issue + "\n")
		}
	}
	if len(m.analysis.Recommendations) > 0 {
		sb.WriteString("\nrecommendations:\n")
		for _, rec := range m.analysis.Recommendations {
			sb.WriteString(theme.Warn.Render("  → ") + rec + "\n")
		}
	}
	return sb.String()
}

func scoreBar(label string, pct float64) string {
	const width = 30
	filled := int(pct / 100 * width)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := theme.Hot.Render(strings.Repeat("█", filled)) +
		theme.Muted.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %s %5.1f%%\n", theme.Muted.Render(label), bar, pct)
}

func healthStyle(health string) lipgloss.Style {
	switch health {
	case "Excellent":
		return theme.Good
	case "Good":
		return theme.Good
	case "Moderate":
		return theme.Warn
	default:
		return theme.Bad
	}
}

func (m Model) selectedReview() (reviewdto.ReviewOutput, bool) {
	if item, ok := m.list.SelectedItem().(reviewItem); ok {
		return item.r, true
	}
	return reviewdto.ReviewOutput{}, false
}

func resultsToItems(results []benchmarkdto.ResultOutput) []list.Item {
	items := make([]list.Item, len(results))
	for i, r := range results {
		items[i] = resultItem{r: r}
	}
	return items
}

func reviewsToItems(reviews []reviewdto.ReviewOutput) []list.Item {
	items := make([]list.Item, len(reviews))
	for i, r := range reviews {
		items[i] = reviewItem{r: r}
	}
	return items
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) loadBreakdownCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		results, err := m.bench.List(ctx)
		if err != nil {
			return BreakdownMsg{Err: err}
		}
		breakdown, _ := m.bench.Breakdown(ctx)
		analysis, err := m.specs.Analyze(ctx)
		if err != nil {
			return BreakdownMsg{Err: err}
		}
		return BreakdownMsg{Breakdown: breakdown, Analysis: analysis, Results: results}
	}
}

func (m Model) loadReviewsCmd() tea.Cmd {
	return func() tea.Msg {
		reviews, err := m.reviews.List(context.Background(), m.username)
		return ReviewsMsg{Reviews: reviews, Err: err}
	}
}

func (m Model) addReviewCmd(text string) tea.Cmd {
	return func() tea.Msg {
		review, err := m.reviews.Add(context.Background(), reviewdto.AddInput{
			Username: m.username,
			Comment:  text,
		})
		return ReviewSavedMsg{Review: review, Err: err}
	}
}

func (m Model) editReviewCmd(id, text string) tea.Cmd {
	return func() tea.Msg {
		review, err := m.reviews.Edit(context.Background(), reviewdto.EditInput{
			Username: m.username,
			ReviewID: id,
			Comment:  text,
		})
		return ReviewSavedMsg{Review: review, Err: err}
	}
}

func (m Model) deleteReviewCmd(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.reviews.Delete(context.Background(), reviewdto.DeleteInput{
			Username: m.username,
			ReviewID: id,
		})
		return ReviewDeletedMsg{Err: err}
	}
}
