// ABOUTME: Dashboard page showing per-user activity stats
// ABOUTME: Fetches once per entry; only reachable behind the access gate

package dashboard

import (
	"context"
	"strings"

	"github.com/chaitanya1270/blog-cli/internal/client"
	"github.com/chaitanya1270/blog-cli/internal/logging"
	"github.com/chaitanya1270/blog-cli/internal/tui/icons"
	"github.com/chaitanya1270/blog-cli/internal/tui/styles"
	"github.com/chaitanya1270/blog-cli/internal/tui/widgets"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// OpenPostMsg asks the app to open a recent post
type OpenPostMsg struct {
	ID int
}

// BackMsg asks the app to return to the feed
type BackMsg struct{}

// dashboardLoadedMsg carries the fetch result and its sequence number
type dashboardLoadedMsg struct {
	seq  int
	dash *client.Dashboard
	err  error
}

// Model is the dashboard page
type Model struct {
	client *client.Client
	width  int
	height int

	dash    *client.Dashboard
	cursor  int
	loading bool
	seq     int
}

// New creates the dashboard page
func New(c *client.Client, width, height int) *Model {
	return &Model{
		client: c,
		width:  width,
		height: height,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.fetch()
}

// SetSize updates the page dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// fetch loads the dashboard, tagging the in-flight request so late
// responses from superseded fetches are discarded
func (m *Model) fetch() tea.Cmd {
	m.loading = true
	m.seq++
	seq := m.seq
	return func() tea.Msg {
		dash, err := m.client.GetDashboard(context.Background())
		return dashboardLoadedMsg{seq: seq, dash: dash, err: err}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			logging.L().Error("failed to load dashboard", zap.Error(msg.err))
			return m, nil
		}
		m.dash = msg.dash
		if m.cursor >= len(m.dash.RecentPosts) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.dash != nil && m.cursor < len(m.dash.RecentPosts)-1 {
				m.cursor++
			}
		case "enter":
			if m.dash != nil && len(m.dash.RecentPosts) > 0 {
				id := m.dash.RecentPosts[m.cursor].ID
				return m, func() tea.Msg { return OpenPostMsg{ID: id} }
			}
		case "r":
			return m, m.fetch()
		case "b", "esc":
			return m, func() tea.Msg { return BackMsg{} }
		}
	}

	return m, nil
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Dashboard.String() + " Dashboard"))
	sb.WriteString("\n")

	if m.loading && m.dash == nil {
		sb.WriteString(styles.MetaStyle.Render("Loading..."))
		sb.WriteString("\n")
		return sb.String()
	}
	if m.dash == nil {
		sb.WriteString(styles.StatusError.Render("Could not load dashboard. Press r to retry."))
		sb.WriteString("\n")
		return sb.String()
	}

	cfg := widgets.DefaultStatBlockConfig()
	blocks := lipgloss.JoinHorizontal(lipgloss.Top,
		widgets.CountBlock(icons.Post, "Posts", m.dash.Stats.PostsCount, "published", cfg),
		" ",
		widgets.CountBlock(icons.Comment, "Comments", m.dash.Stats.CommentsMade, "written by you", cfg),
		" ",
		widgets.CountBlock(icons.Comment, "Received", m.dash.Stats.CommentsReceived, "on your posts", cfg),
	)
	sb.WriteString(blocks)
	sb.WriteString("\n\n")

	sb.WriteString(styles.Subtitle.Render("Recent Posts"))
	sb.WriteString("\n")
	if len(m.dash.RecentPosts) == 0 {
		sb.WriteString(styles.MetaStyle.Render("You haven't written any posts yet."))
		sb.WriteString("\n")
	} else {
		for i, p := range m.dash.RecentPosts {
			line := p.Title
			if p.CreatedAt != "" {
				line += styles.MetaStyle.Render("  " + p.CreatedAt)
			}
			if i == m.cursor {
				sb.WriteString(styles.SelectedStyle.Render("> " + line))
			} else {
				sb.WriteString("  " + line)
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("↑/↓ Select  enter Open  r Refresh  b Back"))
	sb.WriteString("\n")

	return sb.String()
}
