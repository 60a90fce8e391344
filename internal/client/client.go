// ABOUTME: HTTP client for the blog platform API
// ABOUTME: Wraps API calls with bearer auth and typed error handling

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Client is the API client for the blog platform backend.
// The token is written on the event loop while request goroutines read
// it, so access goes through the mutex.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken attaches a bearer credential to all subsequent requests.
// Only the session store should call this.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken detaches the bearer credential
func (c *Client) ClearToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// HasToken reports whether a credential is currently attached
func (c *Client) HasToken() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

// BaseURL returns the configured backend origin
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ResolveURL turns a server-relative path (like an image URL) into an
// absolute URL against the backend origin
func (c *Client) ResolveURL(path string) string {
	if path == "" || strings.Contains(path, "://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// APIError is a non-2xx response from the backend, carrying the HTTP
// status and the server-supplied message when one was decodable
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is a 404 from the backend
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusNotFound
}

// errorBody is the JSON error envelope the backend uses
type errorBody struct {
	Error string `json:"error"`
}

// User represents the authenticated user identity
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	IsAdmin  bool   `json:"is_admin,omitempty"`
}

// Author is the user summary nested in posts and comments
type Author struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// PostSummary is a post as returned by the paginated list endpoint
type PostSummary struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	ImageURL      string   `json:"image_url,omitempty"`
	Author        Author   `json:"author"`
	Tags          []string `json:"tags"`
	CommentsCount int      `json:"comments_count"`
	CreatedAt     string   `json:"created_at"`
}

// Comment represents a single comment on a post
type Comment struct {
	ID        int    `json:"id"`
	Content   string `json:"content"`
	Author    Author `json:"author"`
	CreatedAt string `json:"created_at"`
}

// Post is a single post with its nested comments
type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`
	Author    Author    `json:"author"`
	Tags      []string  `json:"tags"`
	Comments  []Comment `json:"comments"`
	CreatedAt string    `json:"created_at"`
}

// PostPage is one page of the post feed
type PostPage struct {
	Posts       []PostSummary `json:"posts"`
	Total       int           `json:"total"`
	Pages       int           `json:"pages"`
	CurrentPage int           `json:"current_page"`
}

// Tag is a post tag
type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// AuthResponse is the login/register response
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// CreatePostInput is the payload for creating a post
type CreatePostInput struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	ImageURL string   `json:"image_url,omitempty"`
}

// UpdatePostInput is the payload for updating a post; zero-value
// fields are omitted so the backend keeps the existing values
type UpdatePostInput struct {
	Title    string   `json:"title,omitempty"`
	Content  string   `json:"content,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
}

// CreatedPost is the trimmed post shape in the create-post response
type CreatedPost struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	ImageURL  string   `json:"image_url,omitempty"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"created_at"`
}

// CreatePostResponse is the create-post response envelope
type CreatePostResponse struct {
	Message string      `json:"message"`
	Post    CreatedPost `json:"post"`
}

// CreateCommentResponse is the create-comment response envelope
type CreateCommentResponse struct {
	Message string  `json:"message"`
	Comment Comment `json:"comment"`
}

// UploadResponse is the file upload response
type UploadResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// DashboardStats are the per-user activity counters
type DashboardStats struct {
	PostsCount       int `json:"posts_count"`
	CommentsMade     int `json:"comments_made"`
	CommentsReceived int `json:"comments_received"`
}

// RecentPost is the trimmed post shape in the dashboard response
type RecentPost struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

// Dashboard is the per-user activity overview
type Dashboard struct {
	Stats       DashboardStats `json:"stats"`
	RecentPosts []RecentPost   `json:"recent_posts"`
}

// newRequest builds a request against the backend, attaching the bearer
// credential when one is set
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// newJSONRequest builds a request with a JSON-encoded body
func (c *Client) newJSONRequest(ctx context.Context, method, path string, payload interface{}) (*http.Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}
	req, err := c.newRequest(ctx, method, path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// do executes the request, maps failures, and decodes a 2xx JSON body
// into out when out is non-nil
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(req.Context(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses into an *APIError
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		return &APIError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("backend returned status %d", resp.StatusCode),
		}
	}
	return &APIError{Status: resp.StatusCode, Message: body.Error}
}

// Login calls POST /api/login
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	payload := map[string]string{"username": username, "password": password}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/login", payload)
	if err != nil {
		return nil, err
	}

	var auth AuthResponse
	if err := c.do(req, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

// Register calls POST /api/register
func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	payload := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/register", payload)
	if err != nil {
		return nil, err
	}

	var auth AuthResponse
	if err := c.do(req, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

// CurrentUser calls GET /api/user with the attached credential
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/user", nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := c.do(req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetPosts calls GET /api/posts with pagination and an optional tag filter
func (c *Client) GetPosts(ctx context.Context, page, perPage int, tag string) (*PostPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	if tag != "" {
		params.Set("tag", tag)
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/api/posts?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var feed PostPage
	if err := c.do(req, &feed); err != nil {
		return nil, err
	}
	return &feed, nil
}

// GetPost calls GET /api/posts/{id}
func (c *Client) GetPost(ctx context.Context, id int) (*Post, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/api/posts/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var post Post
	if err := c.do(req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost calls POST /api/posts
func (c *Client) CreatePost(ctx context.Context, input *CreatePostInput) (*CreatePostResponse, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/posts", input)
	if err != nil {
		return nil, err
	}

	var created CreatePostResponse
	if err := c.do(req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePost calls PUT /api/posts/{id}; only the post's author may update
func (c *Client) UpdatePost(ctx context.Context, id int, input *UpdatePostInput) error {
	req, err := c.newJSONRequest(ctx, http.MethodPut, fmt.Sprintf("/api/posts/%d", id), input)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// DeletePost calls DELETE /api/posts/{id}; only the post's author may delete
func (c *Client) DeletePost(ctx context.Context, id int) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/posts/%d", id), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// CreateComment calls POST /api/posts/{id}/comments
func (c *Client) CreateComment(ctx context.Context, postID int, content string) (*CreateCommentResponse, error) {
	payload := map[string]string{"content": content}
	req, err := c.newJSONRequest(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", postID), payload)
	if err != nil {
		return nil, err
	}

	var created CreateCommentResponse
	if err := c.do(req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetTags calls GET /api/tags
func (c *Client) GetTags(ctx context.Context) ([]Tag, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/tags", nil)
	if err != nil {
		return nil, err
	}

	var tags []Tag
	if err := c.do(req, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// UploadFile calls POST /api/upload with the file as multipart form data
func (c *Client) UploadFile(ctx context.Context, filename string, data io.Reader) (*UploadResponse, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return nil, fmt.Errorf("failed to read upload payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var uploaded UploadResponse
	if err := c.do(req, &uploaded); err != nil {
		return nil, err
	}
	return &uploaded, nil
}

// GetDashboard calls GET /api/dashboard with the attached credential
func (c *Client) GetDashboard(ctx context.Context) (*Dashboard, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/dashboard", nil)
	if err != nil {
		return nil, err
	}

	var dash Dashboard
	if err := c.do(req, &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}
