// ABOUTME: Single post page with comments and comment submission
// ABOUTME: Refetches the whole post after a comment so ordering stays server-authoritative

package postview

import (
	"context"
	"fmt"
	"strings"

	"github.com/chaitanya1270/blog-cli/internal/client"
	"github.com/chaitanya1270/blog-cli/internal/logging"
	"github.com/chaitanya1270/blog-cli/internal/tui/icons"
	"github.com/chaitanya1270/blog-cli/internal/tui/styles"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// BackMsg is emitted when the user leaves the post page
type BackMsg struct{}

// postLoadedMsg carries the fetched post; seq discards stale responses
type postLoadedMsg struct {
	seq  int
	post *client.Post
	err  error
}

// commentPostedMsg reports the outcome of a comment submission
type commentPostedMsg struct {
	err error
}

// Session gates the comment form on authentication state
type Session interface {
	IsAuthenticated() bool
}

// Model is the single post page
type Model struct {
	client  *client.Client
	session Session
	width   int
	height  int

	postID   int
	post     *client.Post
	notFound bool
	loading  bool
	seq      int

	commenting bool
	submitting bool
	input      textarea.Model
}

// New creates the post page for the given post id
func New(c *client.Client, session Session, postID, width, height int) *Model {
	ta := textarea.New()
	ta.Placeholder = "Write a comment..."
	ta.SetWidth(60)
	ta.SetHeight(3)
	ta.CharLimit = 2000

	return &Model{
		client:  c,
		session: session,
		width:   width,
		height:  height,
		postID:  postID,
		input:   ta,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.fetchPost()
}

// SetSize updates the page dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetPostID switches the page to a different post and refetches
func (m *Model) SetPostID(id int) tea.Cmd {
	if id == m.postID && m.post != nil {
		return nil
	}
	m.postID = id
	m.post = nil
	m.notFound = false
	return m.fetchPost()
}

// PostID returns the id this page is showing
func (m *Model) PostID() int {
	return m.postID
}

func (m *Model) fetchPost() tea.Cmd {
	m.seq++
	m.loading = true
	seq, id := m.seq, m.postID
	return func() tea.Msg {
		post, err := m.client.GetPost(context.Background(), id)
		return postLoadedMsg{seq: seq, post: post, err: err}
	}
}

func (m *Model) submitComment() tea.Cmd {
	content := strings.TrimSpace(m.input.Value())
	if content == "" {
		return nil
	}
	m.submitting = true
	id := m.postID
	return func() tea.Msg {
		_, err := m.client.CreateComment(context.Background(), id, content)
		return commentPostedMsg{err: err}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case postLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			// A missing post is a distinct state, not an error loop
			logging.L().Error("failed to fetch post", zap.Error(msg.err), zap.Int("post_id", m.postID))
			if m.post == nil {
				m.notFound = true
			}
			return m, nil
		}
		m.post = msg.post
		m.notFound = false
		return m, nil

	case commentPostedMsg:
		m.submitting = false
		if msg.err != nil {
			// The typed comment stays in the input for retry
			logging.L().Error("failed to post comment", zap.Error(msg.err), zap.Int("post_id", m.postID))
			return m, nil
		}
		m.input.Reset()
		m.commenting = false
		// Full refetch keeps comment count and ordering server-authoritative
		return m, m.fetchPost()

	case tea.KeyMsg:
		if m.commenting {
			return m.updateCommentForm(msg)
		}
		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "b", "esc":
		return m, func() tea.Msg { return BackMsg{} }
	case "r":
		return m, m.fetchPost()
	case "c":
		if m.post != nil && m.session.IsAuthenticated() {
			m.commenting = true
			m.input.Focus()
			return m, textarea.Blink
		}
	}
	return m, nil
}

func (m *Model) updateCommentForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.commenting = false
		m.input.Blur()
		return m, nil
	case "ctrl+s":
		if m.submitting {
			// A submission is already in flight
			return m, nil
		}
		return m, m.submitComment()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m *Model) View() string {
	if m.loading && m.post == nil && !m.notFound {
		return "Loading post...\n"
	}

	if m.notFound {
		var sb strings.Builder
		sb.WriteString(styles.Title.Render("Post not found"))
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render(icons.Back.String() + " b to go back"))
		return sb.String()
	}

	if m.post == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(m.post.Title))
	sb.WriteString("\n")
	meta := fmt.Sprintf("by %s · %s", m.post.Author.Username, formatDateTime(m.post.CreatedAt))
	sb.WriteString(styles.MetaStyle.Render(meta))
	sb.WriteString("\n")

	if len(m.post.Tags) > 0 {
		for _, tag := range m.post.Tags {
			sb.WriteString(styles.TagStyle.Render(icons.Tag.String() + tag))
		}
		sb.WriteString("\n")
	}
	if m.post.ImageURL != "" {
		sb.WriteString(styles.MetaStyle.Render(icons.Image.String() + " " + m.client.ResolveURL(m.post.ImageURL)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.post.Content)
	sb.WriteString("\n\n")

	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s Comments (%d)", icons.Comment.String(), len(m.post.Comments))))
	sb.WriteString("\n")

	if len(m.post.Comments) == 0 {
		sb.WriteString(styles.MetaStyle.Render("No comments yet. Be the first to comment!"))
		sb.WriteString("\n")
	}
	for _, comment := range m.post.Comments {
		sb.WriteString(fmt.Sprintf("%s %s\n",
			styles.ValueStyle.Render(comment.Author.Username),
			styles.MetaStyle.Render(formatDateTime(comment.CreatedAt))))
		sb.WriteString("  " + comment.Content + "\n")
	}

	sb.WriteString("\n")
	if m.commenting {
		sb.WriteString(m.input.View())
		sb.WriteString("\n")
		if m.submitting {
			sb.WriteString(styles.MetaStyle.Render("Posting..."))
		} else {
			sb.WriteString(styles.Help.Render("ctrl+s Post comment  esc Cancel"))
		}
	} else if m.session.IsAuthenticated() {
		sb.WriteString(styles.Help.Render("c Write a comment"))
	} else {
		sb.WriteString(styles.MetaStyle.Render(icons.Lock.String() + " Log in to post comments"))
	}
	sb.WriteString("\n")

	return sb.String()
}

// formatDateTime trims an ISO timestamp to date and minutes
func formatDateTime(iso string) string {
	if len(iso) >= 16 {
		return iso[:10] + " " + iso[11:16]
	}
	return iso
}
