// ABOUTME: Login and registration pages built on huh forms
// ABOUTME: Emits SubmitMsg for the app, which drives the session store

package authform

import (
	"fmt"
	"strings"

	"github.com/chaitanya1270/blog-cli/internal/tui/icons"
	"github.com/chaitanya1270/blog-cli/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Mode selects which credential form is shown
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// SubmitMsg carries the completed form values to the app
type SubmitMsg struct {
	Mode     Mode
	Username string
	Email    string
	Password string
}

// SwitchModeMsg asks the app to swap between login and registration
type SwitchModeMsg struct {
	Mode Mode
}

// CancelMsg is emitted when the user backs out of the form
type CancelMsg struct{}

// Model is the login/register page
type Model struct {
	mode  Mode
	form  *huh.Form
	width int

	username string
	email    string
	password string

	errMsg  string
	pending bool
}

// formTheme returns a huh theme matching the app palette
func formTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Group.Title = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(styles.Muted).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Primary)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(styles.Muted)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(styles.Danger).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(styles.Danger)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(styles.Primary)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(styles.Muted)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(styles.Primary)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(styles.Text)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.Primary).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(styles.Muted).
		Background(styles.Surface).
		Padding(0, 2).
		MarginRight(1)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(styles.Muted)

	return t
}

// New creates a credential form for the given mode
func New(mode Mode) *Model {
	m := &Model{mode: mode}
	m.form = m.createForm()
	return m
}

func (m *Model) createForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Username").
			Placeholder("username").
			CharLimit(80).
			Value(&m.username).
			Validate(required("username")),
	}
	if m.mode == ModeRegister {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			CharLimit(120).
			Value(&m.email).
			Validate(validateEmail))
	}
	fields = append(fields, huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		CharLimit(120).
		Value(&m.password).
		Validate(required("password")))

	title := "Log In"
	desc := "Enter your credentials"
	if m.mode == ModeRegister {
		title = "Create Account"
		desc = "Choose a username and password"
	}

	return huh.NewForm(
		huh.NewGroup(fields...).Title(title).Description(desc),
	).WithTheme(formTheme())
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("email is required")
	}
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return fmt.Errorf("must be a valid email address")
	}
	return nil
}

// Mode returns the form's current mode
func (m *Model) Mode() Mode {
	return m.mode
}

// Pending reports whether a credential request is in flight
func (m *Model) Pending() bool {
	return m.pending
}

// SetPending toggles the in-flight indicator while the app talks to
// the backend
func (m *Model) SetPending(pending bool) {
	m.pending = pending
}

// SetError surfaces a failed attempt and resets the form for retry,
// keeping the typed username
func (m *Model) SetError(msg string) tea.Cmd {
	m.pending = false
	m.errMsg = msg
	m.password = ""
	m.form = m.createForm()
	return m.form.Init()
}

// SetWidth sets the page width
func (m *Model) SetWidth(width int) {
	m.width = width
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, func() tea.Msg { return CancelMsg{} }
		case "ctrl+t":
			target := ModeRegister
			if m.mode == ModeRegister {
				target = ModeLogin
			}
			return m, func() tea.Msg { return SwitchModeMsg{Mode: target} }
		}
	}

	if m.pending {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		submit := SubmitMsg{
			Mode:     m.mode,
			Username: strings.TrimSpace(m.username),
			Email:    strings.TrimSpace(m.email),
			Password: m.password,
		}
		m.pending = true
		return m, func() tea.Msg { return submit }
	}

	return m, cmd
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	title := icons.Lock.String() + " Log In"
	other := "ctrl+t Register instead"
	if m.mode == ModeRegister {
		title = icons.User.String() + " Create Account"
		other = "ctrl+t Log in instead"
	}
	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("\n")

	if m.errMsg != "" {
		sb.WriteString(styles.StatusError.Render(icons.Warning.String() + " " + m.errMsg))
		sb.WriteString("\n\n")
	}

	sb.WriteString(m.form.View())
	sb.WriteString("\n")

	if m.pending {
		sb.WriteString(styles.MetaStyle.Render("Signing in..."))
	} else {
		sb.WriteString(styles.Help.Render(other + "  esc Back"))
	}
	sb.WriteString("\n")

	return sb.String()
}
