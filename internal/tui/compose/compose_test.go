// ABOUTME: Tests for the create-post page
// ABOUTME: Covers draft validation, tag parsing, upload, and failure retention

package compose

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chaitanya1270/blog-cli/internal/client"
	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func typeText(t *testing.T, m *Model, text string) {
	t.Helper()
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"single", "go", []string{"go"}},
		{"multiple", "go,web,tui", []string{"go", "web", "tui"}},
		{"whitespace trimmed", " go , web ", []string{"go", "web"}},
		{"empty segments dropped", "go,,web,", []string{"go", "web"}},
		{"only commas", ",,,", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseTags(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("parseTags(%q) = %v, want %v", tt.raw, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseTags(%q)[%d] = %q, want %q", tt.raw, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCanSubmitRequiresTitleAndContent(t *testing.T) {
	c := client.New("http://localhost:8000")
	m := New(c, 80, 24)

	if m.CanSubmit() {
		t.Error("empty draft should not be submittable")
	}

	typeText(t, m, "My Post")
	if m.CanSubmit() {
		t.Error("draft with title only should not be submittable")
	}

	m.Update(keyMsg("tab"))
	typeText(t, m, "Some content")
	if !m.CanSubmit() {
		t.Error("draft with title and content should be submittable")
	}
}

func TestSubmitWhitespaceOnlyIsNoop(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	m := New(client.New(srv.URL), 80, 24)
	typeText(t, m, "   ")
	m.Update(keyMsg("tab"))
	typeText(t, m, "   ")

	_, cmd := m.Update(keyMsg("ctrl+s"))
	if cmd != nil {
		t.Fatal("expected no command for whitespace-only draft")
	}
	if m.submitting {
		t.Error("submitting flag should not be set")
	}
	if called {
		t.Error("no request should be made for an invalid draft")
	}
}

func TestSubmitSendsParsedTagsAndImageURL(t *testing.T) {
	var got client.CreatePostInput
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/posts" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Post created successfully",
			"post":    map[string]any{"id": 7, "title": got.Title},
		})
	}))
	defer srv.Close()

	m := New(client.New(srv.URL), 80, 24)
	typeText(t, m, "My Post")
	m.Update(keyMsg("tab"))
	typeText(t, m, "Hello world")
	m.Update(keyMsg("tab"))
	typeText(t, m, " go ,, web ")
	m.uploadedImageURL = "/uploads/pic.png"

	_, cmd := m.Update(keyMsg("ctrl+s"))
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	msg := cmd()
	created, ok := msg.(CreatedMsg)
	if !ok {
		t.Fatalf("expected CreatedMsg, got %T", msg)
	}
	if created.Post.ID != 7 {
		t.Errorf("created post ID = %d, want 7", created.Post.ID)
	}
	if got.Title != "My Post" {
		t.Errorf("title = %q", got.Title)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "go" || got.Tags[1] != "web" {
		t.Errorf("tags = %v, want [go web]", got.Tags)
	}
	if got.ImageURL != "/uploads/pic.png" {
		t.Errorf("image_url = %q", got.ImageURL)
	}
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to create post"})
	}))
	defer srv.Close()

	m := New(client.New(srv.URL), 80, 24)
	typeText(t, m, "My Post")
	m.Update(keyMsg("tab"))
	typeText(t, m, "Hello world")

	_, cmd := m.Update(keyMsg("ctrl+s"))
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	m.Update(cmd())

	if m.submitting {
		t.Error("submitting flag should be cleared on failure")
	}
	if m.title.Value() != "My Post" || m.content.Value() != "Hello world" {
		t.Error("draft should be retained on failure")
	}
	if !strings.Contains(m.View(), "Failed to create post") {
		t.Error("view should show the server error")
	}
}

func TestDuplicateSubmitBlockedWhileInFlight(t *testing.T) {
	m := New(client.New("http://localhost:8000"), 80, 24)
	typeText(t, m, "My Post")
	m.Update(keyMsg("tab"))
	typeText(t, m, "Hello world")

	_, cmd := m.Update(keyMsg("ctrl+s"))
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	_, cmd = m.Update(keyMsg("ctrl+s"))
	if cmd != nil {
		t.Error("second submit while in flight should be a no-op")
	}
}

func TestUploadStoresReturnedURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/upload" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("expected multipart field file: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"message":  "File uploaded successfully",
			"filename": "pic.png",
			"url":      "/uploads/pic.png",
		})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "pic.png")
	if err := os.WriteFile(path, []byte("fake image"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := New(client.New(srv.URL), 80, 24)
	m.image.SetValue(path)

	_, cmd := m.Update(keyMsg("ctrl+u"))
	if cmd == nil {
		t.Fatal("expected an upload command")
	}
	if !m.uploading {
		t.Error("uploading flag should be set")
	}
	m.Update(cmd())

	if m.uploading {
		t.Error("uploading flag should be cleared")
	}
	if m.uploadedImageURL != "/uploads/pic.png" {
		t.Errorf("uploadedImageURL = %q, want /uploads/pic.png", m.uploadedImageURL)
	}
}

func TestUploadWithEmptyPathIsNoop(t *testing.T) {
	m := New(client.New("http://localhost:8000"), 80, 24)
	_, cmd := m.Update(keyMsg("ctrl+u"))
	if cmd != nil {
		t.Error("upload with no path should be a no-op")
	}
}

func TestUploadFailureShowsMessageAndKeepsDraft(t *testing.T) {
	m := New(client.New("http://localhost:8000"), 80, 24)
	typeText(t, m, "My Post")
	m.image.SetValue(filepath.Join(t.TempDir(), "missing.png"))

	_, cmd := m.Update(keyMsg("ctrl+u"))
	if cmd == nil {
		t.Fatal("expected an upload command")
	}
	m.Update(cmd())

	if m.uploadedImageURL != "" {
		t.Error("no URL should be stored on failure")
	}
	if m.title.Value() != "My Post" {
		t.Error("draft should be untouched by upload failure")
	}
	if !strings.Contains(m.View(), "Image upload failed") {
		t.Error("view should show the upload error")
	}
}

func TestEscEmitsCancel(t *testing.T) {
	m := New(client.New("http://localhost:8000"), 80, 24)
	_, cmd := m.Update(keyMsg("esc"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(CancelMsg); !ok {
		t.Error("esc should emit CancelMsg")
	}
}

func TestTabCyclesFocus(t *testing.T) {
	m := New(client.New("http://localhost:8000"), 80, 24)
	if m.focus != fieldTitle {
		t.Fatalf("initial focus = %d, want title", m.focus)
	}
	m.Update(keyMsg("tab"))
	if m.focus != fieldContent {
		t.Errorf("focus after tab = %d, want content", m.focus)
	}
	m.Update(keyMsg("shift+tab"))
	if m.focus != fieldTitle {
		t.Errorf("focus after shift+tab = %d, want title", m.focus)
	}
	m.Update(keyMsg("shift+tab"))
	if m.focus != fieldImage {
		t.Errorf("focus wraps backwards, got %d, want image", m.focus)
	}
}
