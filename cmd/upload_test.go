// ABOUTME: Tests for the upload and tags commands
// ABOUTME: Verifies multipart upload, auth requirement, and tag listing

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

func TestUpload_SendsFileAndPrintsURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			t.Errorf("expected bearer token, got %q", r.Header.Get("Authorization"))
		}
		f, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("expected multipart field file: %v", err)
		}
		f.Close()
		json.NewEncoder(w).Encode(client.UploadResponse{
			Message:  "File uploaded successfully",
			Filename: header.Filename,
			URL:      "/uploads/" + header.Filename,
		})
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "pic.png")
	if err := os.WriteFile(path, []byte("fake image"), 0o644); err != nil {
		t.Fatal(err)
	}

	saveToken(t, "tok-1")
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	if exitCode := runUpload(context.Background(), &buf, path); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("/uploads/pic.png")) {
		t.Errorf("expected URL in output, got: %s", buf.String())
	}
}

func TestUpload_MissingFile(t *testing.T) {
	saveToken(t, "tok-1")

	var buf bytes.Buffer
	if exitCode := runUpload(context.Background(), &buf, "/does/not/exist.png"); exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
}

func TestUpload_RequiresLogin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pic.png")
	if err := os.WriteFile(path, []byte("fake image"), 0o644); err != nil {
		t.Fatal(err)
	}
	saveToken(t, "")

	var buf bytes.Buffer
	if exitCode := runUpload(context.Background(), &buf, path); exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
}

func TestTags_ListsNames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]client.Tag{{ID: 1, Name: "go"}, {ID: 2, Name: "web"}})
	}))
	defer server.Close()

	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	if exitCode := runTags(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("go\nweb\n")) {
		t.Errorf("expected tag names, got: %s", buf.String())
	}
}

func TestTags_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]client.Tag{})
	}))
	defer server.Close()

	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	if exitCode := runTags(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("No tags")) {
		t.Errorf("expected empty marker, got: %s", buf.String())
	}
}
