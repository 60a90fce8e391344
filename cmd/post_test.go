// ABOUTME: Tests for the post command group
// ABOUTME: Verifies view, create, delete behavior and auth handling

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/chaitanya1270/blog-cli/internal/client"
)

// saveToken persists a token under an isolated config dir for the test
func saveToken(t *testing.T, token string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if token != "" {
		cfgDir := filepath.Join(dir, "blog-cli")
		if err := os.MkdirAll(cfgDir, 0700); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(cfgDir, "token"), []byte(token), 0600); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSplitTags(t *testing.T) {
	tags := splitTags(" go ,, web ")
	if len(tags) != 2 || tags[0] != "go" || tags[1] != "web" {
		t.Errorf("splitTags = %v, want [go web]", tags)
	}
	if got := splitTags(""); len(got) != 0 {
		t.Errorf("splitTags(\"\") = %v, want empty", got)
	}
}

func TestParsePostID(t *testing.T) {
	if _, err := parsePostID("abc"); err == nil {
		t.Error("expected error for non-numeric id")
	}
	if _, err := parsePostID("0"); err == nil {
		t.Error("expected error for zero id")
	}
	if id, err := parsePostID("42"); err != nil || id != 42 {
		t.Errorf("parsePostID(42) = %d, %v", id, err)
	}
}

func TestPostView_RendersPostAndComments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(client.Post{
			ID: 1, Title: "Hello", Content: "Body text",
			Author: client.Author{Username: "alice"},
			Tags:   []string{"go"},
			Comments: []client.Comment{
				{ID: 5, Content: "Nice", Author: client.Author{Username: "bob"}},
			},
		})
	}))
	defer server.Close()

	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	if exitCode := runPostView(context.Background(), &buf, "1"); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	for _, want := range []string{"Hello", "Body text", "alice", "bob: Nice", "Comments (1)"} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("expected %q in output, got: %s", want, buf.String())
		}
	}
}

func TestPostView_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Post not found"})
	}))
	defer server.Close()

	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	if exitCode := runPostView(context.Background(), &buf, "99"); exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("not found")) {
		t.Errorf("expected not-found message, got: %s", buf.String())
	}
}

func TestPostView_InvalidID(t *testing.T) {
	var buf bytes.Buffer
	if exitCode := runPostView(context.Background(), &buf, "abc"); exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
}

func TestPostCreate_RequiresLogin(t *testing.T) {
	saveToken(t, "")

	postTitle = "Hello"
	postContent = "Body"
	defer func() {
		postTitle = ""
		postContent = ""
	}()

	var buf bytes.Buffer
	if exitCode := runPostCreate(context.Background(), &buf); exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("not logged in")) {
		t.Errorf("expected login prompt, got: %s", buf.String())
	}
}

func TestPostCreate_SendsTokenAndTags(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("expected bearer token, got %q", got)
		}
		var input client.CreatePostInput
		json.NewDecoder(r.Body).Decode(&input)
		if len(input.Tags) != 2 {
			t.Errorf("expected 2 tags, got %v", input.Tags)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(client.CreatePostResponse{
			Message: "Post created successfully",
			Post:    client.CreatedPost{ID: 7, Title: input.Title},
		})
	}))
	defer server.Close()

	saveToken(t, "tok-1")
	apiURL = server.URL
	postTitle = "Hello"
	postContent = "Body"
	postTags = "go, web"
	defer func() {
		apiURL = ""
		postTitle = ""
		postContent = ""
		postTags = ""
	}()

	var buf bytes.Buffer
	if exitCode := runPostCreate(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("Created post #7")) {
		t.Errorf("expected creation message, got: %s", buf.String())
	}
}

func TestPostCreate_MissingFlags(t *testing.T) {
	postTitle = ""
	postContent = ""

	var buf bytes.Buffer
	if exitCode := runPostCreate(context.Background(), &buf); exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
}

func TestPostDelete_Forbidden(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "Not authorized"})
	}))
	defer server.Close()

	saveToken(t, "tok-1")
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	if exitCode := runPostDelete(context.Background(), &buf, "1"); exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Not authorized")) {
		t.Errorf("expected server message, got: %s", buf.String())
	}
}

func TestPostDelete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "Post deleted successfully"})
	}))
	defer server.Close()

	saveToken(t, "tok-1")
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	if exitCode := runPostDelete(context.Background(), &buf, "1"); exitCode != 0 {
		t.Errorf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
}
