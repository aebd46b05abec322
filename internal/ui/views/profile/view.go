package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	accountdto "sdu/internal/modules/account/dto"
	benchmarkdto "sdu/internal/modules/benchmark/dto"
	"sdu/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type AccountPort interface {
	Profile(ctx context.Context) (accountdto.UserOutput, error)
	UpdateProfile(ctx context.Context, input accountdto.UpdateProfileInput) (accountdto.UserOutput, error)
	DeleteAccount(ctx context.Context) error
	Logout(ctx context.Context) error
}

type BenchmarkPort interface {
	History(ctx context.Context) ([]benchmarkdto.ResultOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	User       accountdto.UserOutput
	SavedCount int
	Err        error
}

type SavedMsg struct {
	User accountdto.UserOutput
	Err  error
}

// LoggedOutMsg bubbles to the app model, which returns to the auth gate.
type LoggedOutMsg struct{ Err error }

// DeletedMsg bubbles to the app model after irreversible account removal.
type DeletedMsg struct{ Err error }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	account AccountPort
	bench   BenchmarkPort

	user          accountdto.UserOutput
	savedCount    int
	usernameInput textinput.Model
	emailInput    textinput.Model
	focusEmail    bool
	editing       bool
	confirming    bool
	submitting    bool
	statusLine    string
	width         int
	height        int
}

func New(account AccountPort, bench BenchmarkPort) Model {
	name := textinput.New()
	name.Placeholder = "new username"
	name.CharLimit = 64
	email := textinput.New()
	email.Placeholder = "new email"
	email.CharLimit = 128
	return Model{account: account, bench: bench, usernameInput: name, emailInput: email}
}

// Open loads fresh profile data; call when the modal becomes visible.
func (m Model) Open() (Model, tea.Cmd) {
	m.editing = false
	m.confirming = false
	m.statusLine = ""
	return m, m.loadCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.Err != nil {
			m.statusLine = "profile load failed: " + msg.Err.Error()
			return m, nil
		}
		m.user = msg.User
		m.savedCount = msg.SavedCount
		return m, nil

	case SavedMsg:
		m.submitting = false
		if msg.Err != nil {
			// The form stays open so the entered values survive a retry.
			m.statusLine = "update failed: " + msg.Err.Error()
			return m, nil
		}
		m.editing = false
		m.usernameInput.Blur()
		m.emailInput.Blur()
		m.user = msg.User
		m.statusLine = "profile updated"
		return m, nil

	case DeletedMsg:
		// Success unmounts the modal at the app level; only failure lands here.
		m.submitting = false
		m.confirming = false
		if msg.Err != nil {
			m.statusLine = "delete failed: " + msg.Err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		if m.editing {
			return m.updateEdit(msg)
		}
		if m.confirming {
			switch msg.String() {
			case "y":
				m.submitting = true
				return m, m.deleteCmd()
			case "n", "esc":
				m.confirming = false
			}
			return m, nil
		}
		switch msg.String() {
		case "e":
			m.editing = true
			m.statusLine = ""
			m.focusEmail = false
			m.usernameInput.SetValue(m.user.Username)
			m.emailInput.SetValue(m.user.Email)
			m.emailInput.Blur()
			return m, m.usernameInput.Focus()
		case "D":
			m.confirming = true
		case "l":
			m.submitting = true
			return m, m.logoutCmd()
		}
	}
	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.usernameInput.Blur()
		m.emailInput.Blur()
		return m, nil
	case "tab", "shift+tab", "up", "down":
		m.focusEmail = !m.focusEmail
		if m.focusEmail {
			m.usernameInput.Blur()
			return m, m.emailInput.Focus()
		}
		m.emailInput.Blur()
		return m, m.usernameInput.Focus()
	case "enter":
		username := strings.TrimSpace(m.usernameInput.Value())
		email := strings.TrimSpace(m.emailInput.Value())
		if username == "" {
			m.statusLine = "username cannot be empty"
			return m, nil
		}
		if email == "" {
			m.statusLine = "email cannot be empty"
			return m, nil
		}
		m.submitting = true
		return m, m.saveCmd(username, email)
	}
	var cmd tea.Cmd
	if m.focusEmail {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.usernameInput, cmd = m.usernameInput.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Profile") + "\n\n")
	if m.editing {
		sb.WriteString(theme.Muted.Render("username ") + m.usernameInput.View() + "\n")
		sb.WriteString(theme.Muted.Render("email    ") + m.emailInput.View() + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("username ") + m.user.Username + "\n")
		sb.WriteString(theme.Muted.Render("email    ") + m.user.Email + "\n")
	}
	avatar := "none"
	if m.user.Avatar != "" {
		avatar = "set"
	}
	sb.WriteString(theme.Muted.Render("avatar   ") + avatar + "\n")
	if !m.user.JoinedDate.IsZero() {
		sb.WriteString(theme.Muted.Render("joined   ") + m.user.JoinedDate.Format("2006-01-02") + "\n")
	}
	sb.WriteString(theme.Muted.Render("saved    ") + fmt.Sprintf("%d benchmark results", m.savedCount) + "\n\n")

	switch {
	case m.submitting:
		sb.WriteString(theme.Warn.Render("working…"))
	case m.confirming:
		sb.WriteString(theme.Bad.Render("Delete account and all data? y/n"))
	case m.editing:
		sb.WriteString(theme.Muted.Render("tab:switch field  enter:save  esc:cancel"))
	default:
		sb.WriteString(theme.Muted.Render("e:edit  l:logout  D:delete account  esc:close"))
	}
	if m.statusLine != "" {
		sb.WriteString("\n" + theme.Hot.Render(m.statusLine))
	}

	card := theme.PaneActive.Width(52).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}

// SetSize sets the placement area for the modal overlay.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Busy reports whether the modal is capturing input for a pending request.
func (m Model) Busy() bool { return m.submitting }

// Editing reports whether the modal is capturing keys for a form or prompt.
func (m Model) Editing() bool { return m.editing || m.confirming }

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		user, err := m.account.Profile(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		history, err := m.bench.History(ctx)
		if err != nil {
			return LoadedMsg{User: user, Err: err}
		}
		return LoadedMsg{User: user, SavedCount: len(history)}
	}
}

func (m Model) saveCmd(username, email string) tea.Cmd {
	return func() tea.Msg {
		input := accountdto.UpdateProfileInput{Username: username, Email: email}
		user, err := m.account.UpdateProfile(context.Background(), input)
		return SavedMsg{User: user, Err: err}
	}
}

func (m Model) deleteCmd() tea.Cmd {
	return func() tea.Msg {
		return DeletedMsg{Err: m.account.DeleteAccount(context.Background())}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return LoggedOutMsg{Err: m.account.Logout(context.Background())}
	}
}
