package auth

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	accountdto "sdu/internal/modules/account/dto"
	"sdu/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type AccountPort interface {
	Login(ctx context.Context, input accountdto.LoginInput) (accountdto.UserOutput, error)
	Signup(ctx context.Context, input accountdto.SignupInput) error
}

// ─── messages ────────────────────────────────────────────────────────────────

// LoginDoneMsg bubbles to the app model, which switches to the dashboard on
// success.
type LoginDoneMsg struct {
	User accountdto.UserOutput
	Err  error
}

type SignupDoneMsg struct{ Err error }

// ─── form mode ───────────────────────────────────────────────────────────────

type formMode int

const (
	modeLogin formMode = iota
	modeSignup
)

const (
	fieldUsername = iota
	fieldEmail
	fieldPassword
	fieldCount
)

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port AccountPort

	mode       formMode
	inputs     [fieldCount]textinput.Model
	focused    int
	submitting bool
	statusLine string
	width      int
	height     int
}

func New(port AccountPort) Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return Model{
		port:   port,
		inputs: [fieldCount]textinput.Model{username, email, password},
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case LoginDoneMsg:
		m.submitting = false
		if msg.Err != nil {
			m.statusLine = "login failed: " + msg.Err.Error()
		}
		return m, nil

	case SignupDoneMsg:
		m.submitting = false
		if msg.Err != nil {
			m.statusLine = "signup failed: " + msg.Err.Error()
			return m, nil
		}
		// Account created but not logged in; the user signs in explicitly.
		m.mode = modeLogin
		m.statusLine = "account created — sign in to continue"
		m.inputs[fieldPassword].SetValue("")
		return m.focusField(fieldUsername), nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			return m.focusField(m.nextField(1)), nil
		case "shift+tab", "up":
			return m.focusField(m.nextField(-1)), nil
		case "ctrl+s":
			m.toggleMode()
			return m, nil
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	title := "Sign In"
	if m.mode == modeSignup {
		title = "Create Account"
	}
	sb.WriteString(theme.Title.Render("System Diagnostic Utility") + "\n\n")
	sb.WriteString(theme.Hot.Render(title) + "\n\n")

	sb.WriteString(theme.Muted.Render("username ") + m.inputs[fieldUsername].View() + "\n")
	if m.mode == modeSignup {
		sb.WriteString(theme.Muted.Render("email    ") + m.inputs[fieldEmail].View() + "\n")
	}
	sb.WriteString(theme.Muted.Render("password ") + m.inputs[fieldPassword].View() + "\n\n")

	if m.submitting {
		sb.WriteString(theme.Warn.Render("submitting…") + "\n")
	} else if m.statusLine != "" {
		sb.WriteString(theme.Bad.Render(m.statusLine) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("enter:submit  tab:next field  ctrl+s:switch login/signup  ctrl+c:quit"))

	card := theme.Pane.Width(56).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) toggleMode() {
	if m.mode == modeLogin {
		m.mode = modeSignup
	} else {
		m.mode = modeLogin
	}
	m.statusLine = ""
}

func (m Model) nextField(dir int) int {
	next := m.focused
	for {
		next = (next + dir + fieldCount) % fieldCount
		if next == fieldEmail && m.mode == modeLogin {
			continue
		}
		return next
	}
}

func (m Model) focusField(idx int) Model {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focused = idx
	m.inputs[idx].Focus()
	return m
}

func (m Model) submit() (Model, tea.Cmd) {
	username := strings.TrimSpace(m.inputs[fieldUsername].Value())
	password := m.inputs[fieldPassword].Value()

	if username == "" || strings.TrimSpace(password) == "" {
		m.statusLine = "username and password are required"
		return m, nil
	}

	m.submitting = true
	m.statusLine = ""
	if m.mode == modeSignup {
		email := strings.TrimSpace(m.inputs[fieldEmail].Value())
		return m, m.signupCmd(username, email, password)
	}
	return m, m.loginCmd(username, password)
}

func (m Model) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := m.port.Login(context.Background(), accountdto.LoginInput{
			Username: username,
			Password: password,
		})
		return LoginDoneMsg{User: user, Err: err}
	}
}

func (m Model) signupCmd(username, email, password string) tea.Cmd {
	return func() tea.Msg {
		err := m.port.Signup(context.Background(), accountdto.SignupInput{
			Username: username,
			Email:    email,
			Password: password,
		})
		return SignupDoneMsg{Err: err}
	}
}
