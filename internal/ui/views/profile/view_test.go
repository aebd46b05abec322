package profile

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	accountdto "sdu/internal/modules/account/dto"
	benchmarkdto "sdu/internal/modules/benchmark/dto"
)

type fakeAccount struct {
	user      accountdto.UserOutput
	updateErr error
	lastInput accountdto.UpdateProfileInput
}

func (f *fakeAccount) Profile(context.Context) (accountdto.UserOutput, error) {
	return f.user, nil
}

func (f *fakeAccount) UpdateProfile(_ context.Context, input accountdto.UpdateProfileInput) (accountdto.UserOutput, error) {
	f.lastInput = input
	if f.updateErr != nil {
		return accountdto.UserOutput{}, f.updateErr
	}
	f.user.Username = input.Username
	f.user.Email = input.Email
	return f.user, nil
}

func (f *fakeAccount) DeleteAccount(context.Context) error { return nil }
func (f *fakeAccount) Logout(context.Context) error        { return nil }

type fakeHistory struct{}

func (fakeHistory) History(context.Context) ([]benchmarkdto.ResultOutput, error) {
	return nil, nil
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestFailedSaveKeepsFormOpenWithEnteredValues(t *testing.T) {
	t.Parallel()

	account := &fakeAccount{
		user:      accountdto.UserOutput{Username: "ada", Email: "ada@example.com"},
		updateErr: errors.New("backend unreachable"),
	}
	m := New(account, fakeHistory{})
	m.user = account.user

	m, _ = m.Update(keyRune('e'))
	if !m.editing {
		t.Fatal("'e' did not open the edit form")
	}
	m.usernameInput.SetValue("ada.l")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter did not produce a save command")
	}
	m, _ = m.Update(cmd())

	if !m.editing {
		t.Fatal("failed save closed the edit form")
	}
	if m.usernameInput.Value() != "ada.l" || m.emailInput.Value() != "ada@example.com" {
		t.Fatalf("entered values lost: username=%q email=%q",
			m.usernameInput.Value(), m.emailInput.Value())
	}
	if m.statusLine == "" {
		t.Fatal("failed save did not surface an error")
	}
	if account.lastInput.Username != "ada.l" || account.lastInput.Email != "ada@example.com" {
		t.Fatalf("update input = %+v", account.lastInput)
	}
}

func TestSaveClosesFormAndUpdatesIdentity(t *testing.T) {
	t.Parallel()

	account := &fakeAccount{
		user: accountdto.UserOutput{Username: "ada", Email: "ada@example.com"},
	}
	m := New(account, fakeHistory{})
	m.user = account.user

	m, _ = m.Update(keyRune('e'))
	m.usernameInput.SetValue("ada.l")
	m.emailInput.SetValue("ada.l@example.com")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter did not produce a save command")
	}
	m, _ = m.Update(cmd())

	if m.editing {
		t.Fatal("successful save left the edit form open")
	}
	if m.user.Username != "ada.l" || m.user.Email != "ada.l@example.com" {
		t.Fatalf("user = %+v", m.user)
	}
}

func TestEnterRejectsBlankUsername(t *testing.T) {
	t.Parallel()

	account := &fakeAccount{user: accountdto.UserOutput{Username: "ada", Email: "ada@example.com"}}
	m := New(account, fakeHistory{})
	m.user = account.user

	m, _ = m.Update(keyRune('e'))
	m.usernameInput.SetValue("   ")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("blank username still produced a save command")
	}
	if !m.editing || m.statusLine == "" {
		t.Fatal("blank username must keep the form open with a message")
	}
}
