// ABOUTME: Create-post page tracking an unsaved draft
// ABOUTME: Image upload is an explicit step separate from submission

package compose

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/chaitanya1270/blog-cli/internal/client"
	"github.com/chaitanya1270/blog-cli/internal/logging"
	"github.com/chaitanya1270/blog-cli/internal/tui/icons"
	"github.com/chaitanya1270/blog-cli/internal/tui/styles"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// CreatedMsg is emitted when the post is created; the app navigates away
type CreatedMsg struct {
	Post client.CreatedPost
}

// CancelMsg is emitted when the user abandons the draft
type CancelMsg struct{}

// uploadedMsg reports the outcome of the explicit image upload step
type uploadedMsg struct {
	url string
	err error
}

// createFailedMsg keeps the draft intact for retry
type createFailedMsg struct {
	err error
}

// Focusable fields, cycled with tab
const (
	fieldTitle = iota
	fieldContent
	fieldTags
	fieldImage
	fieldCount
)

// Model is the create-post page
type Model struct {
	client *client.Client
	width  int
	height int

	title   textinput.Model
	content textarea.Model
	tags    textinput.Model
	image   textinput.Model
	focus   int

	uploadedImageURL string
	uploading        bool
	submitting       bool
	errMsg           string
}

// New creates an empty draft page
func New(c *client.Client, width, height int) *Model {
	title := textinput.New()
	title.Placeholder = "Post title"
	title.CharLimit = 200
	title.Width = 60
	title.Focus()

	content := textarea.New()
	content.Placeholder = "Write your post..."
	content.SetWidth(60)
	content.SetHeight(8)

	tags := textinput.New()
	tags.Placeholder = "e.g., technology, programming, web development"
	tags.CharLimit = 200
	tags.Width = 60

	image := textinput.New()
	image.Placeholder = "/path/to/image.png"
	image.CharLimit = 256
	image.Width = 60

	return &Model{
		client:  c,
		width:   width,
		height:  height,
		title:   title,
		content: content,
		tags:    tags,
		image:   image,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the page dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// CanSubmit reports whether the draft passes client-side validation:
// trimmed title and content must be non-empty
func (m *Model) CanSubmit() bool {
	return strings.TrimSpace(m.title.Value()) != "" && strings.TrimSpace(m.content.Value()) != ""
}

// parseTags splits the raw comma-separated input into trimmed,
// non-empty tag strings. Only called at submission time.
func parseTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// uploadImage reads the selected file and sends it to the upload endpoint
func (m *Model) uploadImage() tea.Cmd {
	path := strings.TrimSpace(m.image.Value())
	if path == "" || m.uploading {
		return nil
	}
	m.uploading = true
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return uploadedMsg{err: err}
		}
		resp, err := m.client.UploadFile(context.Background(), filepath.Base(path), bytes.NewReader(data))
		if err != nil {
			return uploadedMsg{err: err}
		}
		return uploadedMsg{url: resp.URL}
	}
}

// submit validates the draft and creates the post
func (m *Model) submit() tea.Cmd {
	if !m.CanSubmit() || m.submitting {
		return nil
	}
	m.submitting = true
	m.errMsg = ""
	input := &client.CreatePostInput{
		Title:    m.title.Value(),
		Content:  m.content.Value(),
		Tags:     parseTags(m.tags.Value()),
		ImageURL: m.uploadedImageURL,
	}
	return func() tea.Msg {
		resp, err := m.client.CreatePost(context.Background(), input)
		if err != nil {
			return createFailedMsg{err: err}
		}
		return CreatedMsg{Post: resp.Post}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case uploadedMsg:
		m.uploading = false
		if msg.err != nil {
			logging.L().Error("image upload failed", zap.Error(msg.err))
			m.errMsg = "Image upload failed"
			return m, nil
		}
		m.uploadedImageURL = msg.url
		m.errMsg = ""
		return m, nil

	case createFailedMsg:
		// Draft stays intact for retry
		m.submitting = false
		logging.L().Error("failed to create post", zap.Error(msg.err))
		m.errMsg = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return CancelMsg{} }
		case "tab":
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil
		case "shift+tab":
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, nil
		case "ctrl+u":
			return m, m.uploadImage()
		case "ctrl+s":
			return m, m.submit()
		}
		return m, m.updateFocused(msg)
	}

	return m, nil
}

func (m *Model) setFocus(field int) {
	m.focus = field
	m.title.Blur()
	m.content.Blur()
	m.tags.Blur()
	m.image.Blur()
	switch field {
	case fieldTitle:
		m.title.Focus()
	case fieldContent:
		m.content.Focus()
	case fieldTags:
		m.tags.Focus()
	case fieldImage:
		m.image.Focus()
	}
}

func (m *Model) updateFocused(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldContent:
		m.content, cmd = m.content.Update(msg)
	case fieldTags:
		m.tags, cmd = m.tags.Update(msg)
	case fieldImage:
		m.image, cmd = m.image.Update(msg)
	}
	return cmd
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Compose.String() + " Create New Post"))
	sb.WriteString("\n")

	sb.WriteString(styles.Subtitle.Render("Title"))
	sb.WriteString("\n" + m.title.View() + "\n\n")

	sb.WriteString(styles.Subtitle.Render("Content"))
	sb.WriteString("\n" + m.content.View() + "\n\n")

	sb.WriteString(styles.Subtitle.Render("Tags (comma-separated)"))
	sb.WriteString("\n" + m.tags.View() + "\n\n")

	sb.WriteString(styles.Subtitle.Render("Image"))
	sb.WriteString("\n" + m.image.View() + "\n")
	if m.uploading {
		sb.WriteString(styles.MetaStyle.Render("Uploading..."))
		sb.WriteString("\n")
	} else if m.uploadedImageURL != "" {
		sb.WriteString(styles.StatusOK.Render(icons.CheckOK.String() + " Uploaded: " + m.client.ResolveURL(m.uploadedImageURL)))
		sb.WriteString("\n")
	}

	if m.errMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.StatusError.Render(m.errMsg))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	if m.submitting {
		sb.WriteString(styles.MetaStyle.Render("Creating..."))
	} else {
		help := "tab Next field  ctrl+u Upload image  ctrl+s Create post  esc Cancel"
		if !m.CanSubmit() {
			help += "  (title and content required)"
		}
		sb.WriteString(styles.Help.Render(help))
	}
	sb.WriteString("\n")

	return sb.String()
}
