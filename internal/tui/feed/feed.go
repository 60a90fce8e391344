// ABOUTME: Post feed page with pagination and tag filtering
// ABOUTME: Refetches whenever the page or the active tag filter changes

package feed

import (
	"context"
	"fmt"
	"strings"

	"github.com/chaitanya1270/blog-cli/internal/client"
	"github.com/chaitanya1270/blog-cli/internal/logging"
	"github.com/chaitanya1270/blog-cli/internal/tui/icons"
	"github.com/chaitanya1270/blog-cli/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// perPage is the fixed feed page size
const perPage = 10

// OpenPostMsg is emitted when the user opens a post from the feed
type OpenPostMsg struct {
	ID int
}

// postsLoadedMsg carries one page of posts; seq guards against a stale
// response overtaking a newer request
type postsLoadedMsg struct {
	seq  int
	page *client.PostPage
	err  error
}

// tagsLoadedMsg carries the available tag list, fetched once per mount
type tagsLoadedMsg struct {
	tags []client.Tag
	err  error
}

// Model is the post feed page
type Model struct {
	client *client.Client
	width  int
	height int

	posts      []client.PostSummary
	page       int
	totalPages int
	activeTag  string
	tags       []string

	cursor    int
	tagMode   bool
	tagCursor int
	loading   bool
	seq       int
}

// New creates the feed page
func New(c *client.Client, width, height int) *Model {
	return &Model{
		client:     c,
		width:      width,
		height:     height,
		page:       1,
		totalPages: 1,
	}
}

// Init implements tea.Model; it kicks off the post and tag fetches
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetchPosts(), m.fetchTags())
}

// SetSize updates the page dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ActiveTag returns the current tag filter, empty when unfiltered
func (m *Model) ActiveTag() string {
	return m.activeTag
}

// Page returns the current page number
func (m *Model) Page() int {
	return m.page
}

// fetchPosts issues a page fetch for the current page and filter. The
// sequence number ties the response to this request; a response for a
// superseded request is discarded in Update.
func (m *Model) fetchPosts() tea.Cmd {
	m.seq++
	m.loading = true
	seq, page, tag := m.seq, m.page, m.activeTag
	return func() tea.Msg {
		feed, err := m.client.GetPosts(context.Background(), page, perPage, tag)
		return postsLoadedMsg{seq: seq, page: feed, err: err}
	}
}

// fetchTags loads the tag list; it does not depend on page or filter
func (m *Model) fetchTags() tea.Cmd {
	return func() tea.Msg {
		tags, err := m.client.GetTags(context.Background())
		return tagsLoadedMsg{tags: tags, err: err}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case postsLoadedMsg:
		if msg.seq != m.seq {
			// Stale response from a superseded fetch
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			// Keep whatever was displayed before
			logging.L().Error("failed to fetch posts", zap.Error(msg.err), zap.Int("page", m.page))
			return m, nil
		}
		m.posts = msg.page.Posts
		m.totalPages = msg.page.Pages
		if m.totalPages < 1 {
			m.totalPages = 1
		}
		if m.page > m.totalPages {
			m.page = m.totalPages
		}
		if m.cursor >= len(m.posts) {
			m.cursor = 0
		}
		return m, nil

	case tagsLoadedMsg:
		if msg.err != nil {
			logging.L().Error("failed to fetch tags", zap.Error(msg.err))
			return m, nil
		}
		names := make([]string, 0, len(msg.tags))
		for _, t := range msg.tags {
			names = append(names, t.Name)
		}
		m.tags = names
		return m, nil

	case tea.KeyMsg:
		if m.tagMode {
			return m.updateTagMode(msg)
		}
		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.posts)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(m.posts) {
			id := m.posts[m.cursor].ID
			return m, func() tea.Msg { return OpenPostMsg{ID: id} }
		}
	case "right", "n":
		// Clamped: no fetch past the last page
		if m.page < m.totalPages {
			m.page++
			return m, m.fetchPosts()
		}
	case "left", "p":
		if m.page > 1 {
			m.page--
			return m, m.fetchPosts()
		}
	case "t":
		if len(m.tags) > 0 {
			m.tagMode = true
			m.tagCursor = 0
		}
	case "c":
		if m.activeTag != "" {
			m.activeTag = ""
			m.page = 1
			return m, m.fetchPosts()
		}
	case "r":
		return m, m.fetchPosts()
	}
	return m, nil
}

func (m *Model) updateTagMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.tagCursor > 0 {
			m.tagCursor--
		}
	case "down", "j":
		if m.tagCursor < len(m.tags) {
			m.tagCursor++
		}
	case "enter":
		m.tagMode = false
		if m.tagCursor == 0 {
			m.activeTag = ""
		} else {
			m.activeTag = m.tags[m.tagCursor-1]
		}
		// Selecting a filter always resets to the first page, even when
		// the same tag is picked again
		m.page = 1
		return m, m.fetchPosts()
	case "esc":
		m.tagMode = false
	}
	return m, nil
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Post.String() + " Blog Posts"))
	sb.WriteString("\n")

	if m.tagMode {
		sb.WriteString(m.viewTagPicker())
		return sb.String()
	}

	if m.activeTag != "" {
		sb.WriteString(styles.MetaStyle.Render("Filtered by: "))
		sb.WriteString(styles.ActiveTagStyle.Render(m.activeTag))
		sb.WriteString("\n\n")
	}

	if m.loading && len(m.posts) == 0 {
		sb.WriteString("Loading posts...\n")
		return sb.String()
	}

	if len(m.posts) == 0 {
		sb.WriteString(styles.Subtitle.Render("No posts found"))
		sb.WriteString("\nBe the first to create a blog post!\n")
		return sb.String()
	}

	for i, post := range m.posts {
		marker := "  "
		titleStyle := styles.ValueStyle
		if i == m.cursor {
			marker = styles.SelectedStyle.Render("> ")
			titleStyle = styles.SelectedStyle
		}
		sb.WriteString(fmt.Sprintf("%s%s\n", marker, titleStyle.Render(post.Title)))
		meta := fmt.Sprintf("  by %s on %s · %d comments",
			post.Author.Username, formatDate(post.CreatedAt), post.CommentsCount)
		sb.WriteString(styles.MetaStyle.Render(meta))
		sb.WriteString("\n")
		if len(post.Tags) > 0 {
			sb.WriteString("  ")
			for _, tag := range post.Tags {
				sb.WriteString(styles.TagStyle.Render(icons.Tag.String() + tag))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(styles.MetaStyle.Render(fmt.Sprintf("Page %d of %d", m.page, m.totalPages)))
	sb.WriteString("\n")

	return sb.String()
}

// viewTagPicker renders the tag filter list with "All posts" on top
func (m *Model) viewTagPicker() string {
	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render("Filter by tag"))
	sb.WriteString("\n")

	options := append([]string{"All posts"}, m.tags...)
	for i, opt := range options {
		if i == m.tagCursor {
			sb.WriteString(styles.SelectedStyle.Render("> " + opt))
		} else {
			sb.WriteString("  " + opt)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatDate trims an ISO timestamp down to its date part
func formatDate(iso string) string {
	if len(iso) >= 10 {
		return iso[:10]
	}
	return iso
}
