// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state, the access gate, and routes messages to pages

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/chaitanya1270/blog-cli/internal/client"
	"github.com/chaitanya1270/blog-cli/internal/session"
	"github.com/chaitanya1270/blog-cli/internal/tui/authform"
	"github.com/chaitanya1270/blog-cli/internal/tui/compose"
	"github.com/chaitanya1270/blog-cli/internal/tui/dashboard"
	"github.com/chaitanya1270/blog-cli/internal/tui/feed"
	"github.com/chaitanya1270/blog-cli/internal/tui/gate"
	"github.com/chaitanya1270/blog-cli/internal/tui/icons"
	"github.com/chaitanya1270/blog-cli/internal/tui/postview"
	"github.com/chaitanya1270/blog-cli/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenFeed Screen = iota
	ScreenPost
	ScreenCompose
	ScreenDashboard
	ScreenAuth
)

// Layout constants
const (
	minTerminalWidth = 80
	frameOverhead    = 4 // header, footer, and their surrounding newlines
)

// sessionReadyMsg is sent when the persisted credential check finishes
type sessionReadyMsg struct{}

// authResultMsg carries the outcome of a login or register attempt
type authResultMsg struct {
	err error
}

// App is the root model for the TUI
type App struct {
	client  *client.Client
	session *session.Store
	screen  Screen
	width   int
	height  int

	// Where to go once the gate lets the user through
	intended Screen

	// Child models
	feed     *feed.Model
	postView *postview.Model
	composer *compose.Model
	dashView *dashboard.Model
	auth     *authform.Model
	fromDash bool
}

// New creates a new TUI application
func New(apiClient *client.Client, store *session.Store) *App {
	return &App{
		client:   apiClient,
		session:  store,
		screen:   ScreenFeed,
		intended: ScreenFeed,
		feed:     feed.New(apiClient, 0, 0),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.feed.Init(), a.verifySession())
}

// verifySession checks any persisted credential against the backend
func (a *App) verifySession() tea.Cmd {
	return func() tea.Msg {
		a.session.Initialize(context.Background())
		return sessionReadyMsg{}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.feed.SetSize(a.contentWidth(), a.contentHeight())
		if a.postView != nil {
			a.postView.SetSize(a.contentWidth(), a.contentHeight())
		}
		if a.composer != nil {
			a.composer.SetSize(a.contentWidth(), a.contentHeight())
		}
		if a.dashView != nil {
			a.dashView.SetSize(a.contentWidth(), a.contentHeight())
		}
		if a.auth != nil {
			a.auth.SetWidth(a.contentWidth())
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.updateKey(msg)

	case sessionReadyMsg:
		// If the user tried to enter a protected screen while the
		// credential check was still running, retry the gate now
		if a.intended != a.screen {
			return a.navigate(a.intended)
		}
		return a, nil

	case feed.OpenPostMsg:
		a.fromDash = false
		return a.openPost(msg.ID)

	case dashboard.OpenPostMsg:
		a.fromDash = true
		return a.openPost(msg.ID)

	case postview.BackMsg:
		if a.fromDash && a.dashView != nil {
			a.screen = ScreenDashboard
		} else {
			a.screen = ScreenFeed
		}
		return a, nil

	case dashboard.BackMsg:
		a.screen = ScreenFeed
		return a, nil

	case compose.CreatedMsg:
		// New post exists; land on the dashboard with fresh data
		a.composer = nil
		return a.navigate(ScreenDashboard)

	case compose.CancelMsg:
		a.composer = nil
		a.screen = ScreenFeed
		return a, nil

	case authform.SubmitMsg:
		return a, a.submitCredentials(msg)

	case authform.SwitchModeMsg:
		a.auth = authform.New(msg.Mode)
		a.auth.SetWidth(a.contentWidth())
		return a, a.auth.Init()

	case authform.CancelMsg:
		a.auth = nil
		a.screen = ScreenFeed
		a.intended = ScreenFeed
		return a, nil

	case authResultMsg:
		if msg.err != nil {
			if a.auth != nil {
				return a, a.auth.SetError(msg.err.Error())
			}
			return a, nil
		}
		a.auth = nil
		return a.navigate(a.intended)
	}

	// Everything else (page fetch results, form internals, blink ticks)
	// goes to the live child models
	return a.forward(msg)
}

// forward routes a message to all live pages and batches their commands
func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if a.feed != nil {
		if _, cmd := a.feed.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if a.postView != nil {
		if _, cmd := a.postView.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if a.composer != nil {
		if _, cmd := a.composer.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if a.dashView != nil {
		if _, cmd := a.dashView.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if a.auth != nil {
		if _, cmd := a.auth.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return a, tea.Batch(cmds...)
}

// updateKey routes a key press to the active screen
func (a *App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenFeed:
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "w":
			return a.navigate(ScreenCompose)
		case "d":
			return a.navigate(ScreenDashboard)
		case "l":
			if a.session.IsAuthenticated() {
				a.session.Logout()
				return a, nil
			}
			return a.navigate(ScreenAuth)
		}
		_, cmd := a.feed.Update(msg)
		return a, cmd

	case ScreenPost:
		if a.postView == nil {
			return a, nil
		}
		_, cmd := a.postView.Update(msg)
		return a, cmd

	case ScreenCompose:
		if a.composer == nil {
			return a, nil
		}
		_, cmd := a.composer.Update(msg)
		return a, cmd

	case ScreenDashboard:
		if a.dashView == nil {
			return a, nil
		}
		if msg.String() == "w" {
			return a.navigate(ScreenCompose)
		}
		_, cmd := a.dashView.Update(msg)
		return a, cmd

	case ScreenAuth:
		if a.auth == nil {
			return a, nil
		}
		_, cmd := a.auth.Update(msg)
		return a, cmd
	}

	return a, nil
}

// navigate moves to a screen, applying the access gate for protected ones
func (a *App) navigate(target Screen) (tea.Model, tea.Cmd) {
	a.intended = target

	switch target {
	case ScreenFeed:
		a.screen = ScreenFeed
		return a, nil

	case ScreenAuth:
		a.auth = authform.New(authform.ModeLogin)
		a.auth.SetWidth(a.contentWidth())
		a.screen = ScreenAuth
		return a, a.auth.Init()

	case ScreenCompose, ScreenDashboard:
		switch gate.Check(a.session, false) {
		case gate.ShowLoading:
			// Keep the current screen; sessionReadyMsg retries
			return a, nil
		case gate.RedirectLogin:
			a.auth = authform.New(authform.ModeLogin)
			a.auth.SetWidth(a.contentWidth())
			a.screen = ScreenAuth
			return a, a.auth.Init()
		case gate.Denied:
			a.intended = a.screen
			return a, nil
		}

		if target == ScreenCompose {
			a.composer = compose.New(a.client, a.contentWidth(), a.contentHeight())
			a.screen = ScreenCompose
			return a, a.composer.Init()
		}
		a.dashView = dashboard.New(a.client, a.contentWidth(), a.contentHeight())
		a.screen = ScreenDashboard
		return a, a.dashView.Init()
	}

	return a, nil
}

// openPost shows the detail page for a post, reusing the page when the
// same post is already loaded
func (a *App) openPost(id int) (tea.Model, tea.Cmd) {
	if a.postView == nil {
		a.postView = postview.New(a.client, a.session, id, a.contentWidth(), a.contentHeight())
		a.screen = ScreenPost
		return a, a.postView.Init()
	}
	cmd := a.postView.SetPostID(id)
	a.screen = ScreenPost
	return a, cmd
}

// submitCredentials drives the session store from the auth form values
func (a *App) submitCredentials(msg authform.SubmitMsg) tea.Cmd {
	return func() tea.Msg {
		var err error
		if msg.Mode == authform.ModeRegister {
			err = a.session.Register(context.Background(), msg.Username, msg.Email, msg.Password)
		} else {
			err = a.session.Login(context.Background(), msg.Username, msg.Password)
		}
		return authResultMsg{err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenFeed:
		content = a.feed.View()
	case ScreenPost:
		if a.postView != nil {
			content = a.postView.View()
		}
	case ScreenCompose:
		if a.composer != nil {
			content = a.composer.View()
		}
	case ScreenDashboard:
		if a.dashView != nil {
			content = a.dashView.View()
		}
	case ScreenAuth:
		if a.auth != nil {
			content = a.auth.View()
		}
	default:
		content = a.feed.View()
	}

	var sb strings.Builder
	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())
	return sb.String()
}

// renderHeader creates the header bar with app branding and session state
func (a *App) renderHeader() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("Blog"))

	rightText := ""
	if a.session.Loading() {
		rightText = contextStyle.Render("Checking session...") + " "
	} else if user := a.session.CurrentUser(); user != nil {
		rightText = contextStyle.Render(icons.User.String()+" "+user.Username) + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"
	return borderStyle.Render(header)
}

// renderFooter creates the footer with per-screen keyboard shortcuts
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var shortcuts []string
	switch a.screen {
	case ScreenFeed:
		shortcuts = []string{"↑↓ Navigate", "Enter Open", "w Write", "d Dashboard"}
		if a.session.IsAuthenticated() {
			shortcuts = append(shortcuts, "l Logout")
		} else {
			shortcuts = append(shortcuts, "l Login")
		}
		shortcuts = append(shortcuts, "q Quit")
	case ScreenPost:
		shortcuts = []string{"c Comment", "r Refresh", "b Back"}
	case ScreenCompose:
		shortcuts = []string{"ctrl+u Upload", "ctrl+s Create", "esc Cancel"}
	case ScreenDashboard:
		shortcuts = []string{"↑↓ Select", "Enter Open", "w Write", "r Refresh", "b Back"}
	case ScreenAuth:
		shortcuts = []string{"Enter Next", "ctrl+t Switch", "esc Back"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	fillWidth := width - 4 - lipgloss.Width(leftPlainText)
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + "─╯"
	return borderStyle.Render(footer)
}

// contentWidth calculates the width available for page content
func (a *App) contentWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth - 2
	}
	return a.width - 2
}

// contentHeight calculates the height available for page content
func (a *App) contentHeight() int {
	return a.height - frameOverhead
}

// Run starts the TUI
func Run(apiClient *client.Client, store *session.Store) error {
	app := New(apiClient, store)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
