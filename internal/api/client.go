// ABOUTME: HTTP client for the workout API and S3 presign endpoints.
// ABOUTME: All calls are one-shot with a request timeout; no retries.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Classified failures for the analyzed-video URL path. These are the only
// fetch errors surfaced to the user instead of degrading silently.
var (
	// ErrVideoNotFound means no analyzed video exists for that date/set.
	ErrVideoNotFound = errors.New("analyzed video not found")
	// ErrServerError means the API answered with a 5xx status.
	ErrServerError = errors.New("server error")
	// ErrMalformedResponse means the API answered but without a usable URL.
	ErrMalformedResponse = errors.New("malformed response")
)

// WorkoutFetcher is the read surface the sync resolver depends on.
// Implemented by *Client; test doubles implement it directly.
type WorkoutFetcher interface {
	WorkoutsByDate(ctx context.Context, userID int, date string, exercise string) (*WorkoutsResponse, error)
}

var _ WorkoutFetcher = (*Client)(nil)

const (
	defaultUserAgent = "fitai/0.1"
	requestTimeout   = 10 * time.Second

	// Result bucket layout used by the direct-storage fallback probe.
	resultFolder     = "fitvideoresult"
	defaultBucketURL = "https://thefit-bucket.s3.ap-northeast-2.amazonaws.com"
)

// Client talks to the workout REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	bucketURL string
}

// NewClient builds a Client for the given base URL.
func NewClient(base string) (*Client, error) {
	u, err := parseBaseURL(base)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: u,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		bucketURL: defaultBucketURL,
	}, nil
}

// WorkoutsByDate retrieves the sets created on the given date (YYYY-MM-DD)
// for one exercise, including the day's total repetition count.
func (c *Client) WorkoutsByDate(ctx context.Context, userID int, date string, exercise string) (*WorkoutsResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("exercise", exercise)
	rel := &url.URL{
		Path:     fmt.Sprintf("/workouts/users/%d/date=%s", userID, date),
		RawQuery: values.Encode(),
	}
	var payload WorkoutsResponse
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// AnalyzedVideoURL retrieves a presigned GET URL for one analyzed set video.
// When the API cannot serve one it probes the fixed result-bucket path
// directly before giving up with a classified error.
func (c *Client) AnalyzedVideoURL(ctx context.Context, req AnalyzedURLRequest) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("yyyymmdd", req.DateYMD)
	values.Set("set_no", strconv.Itoa(req.SetNo))
	values.Set("user_id", strconv.Itoa(req.UserID))
	values.Set("user_name", req.UserName)
	values.Set("exercise", string(req.Exercise))
	values.Set("download", strconv.FormatBool(req.Download))
	rel := &url.URL{Path: "/workouts/analyzed-url-by-date", RawQuery: values.Encode()}

	var payload presignResponse
	apiErr := c.doURL(ctx, http.MethodGet, rel, &payload)
	if apiErr == nil && payload.URL != "" {
		return payload.URL, nil
	}

	// Fallback: probe the conventional result path in the bucket.
	if direct, ok := c.probeResultObject(ctx, req); ok {
		return direct, nil
	}

	return "", classifyURLError(apiErr, payload.URL)
}

// probeResultObject issues a HEAD request against the fixed path convention
// the analysis pipeline writes to.
func (c *Client) probeResultObject(ctx context.Context, req AnalyzedURLRequest) (string, bool) {
	path := fmt.Sprintf("%s/%d_%s/%s/%s/set%d_%s160000.mp4",
		resultFolder, req.UserID, req.UserName, req.DateYMD, req.Exercise, req.SetNo, req.DateYMD)
	direct := c.bucketURL + "/" + path

	head, err := http.NewRequestWithContext(ctx, http.MethodHead, direct, nil)
	if err != nil {
		return "", false
	}
	resp, err := c.http.Do(head)
	if err != nil {
		return "", false
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode == http.StatusOK {
		return direct, true
	}
	return "", false
}

// classifyURLError maps a failed analyzed-URL exchange onto the user-facing
// error taxonomy: not-found vs server-error vs malformed-response.
func classifyURLError(apiErr error, gotURL string) error {
	var se *statusError
	if errors.As(apiErr, &se) {
		switch {
		case se.code == http.StatusNotFound:
			return fmt.Errorf("%w: %v", ErrVideoNotFound, apiErr)
		case se.code >= 500:
			return fmt.Errorf("%w: %v", ErrServerError, apiErr)
		}
	}
	if apiErr == nil && gotURL == "" {
		return fmt.Errorf("%w: missing url field", ErrMalformedResponse)
	}
	if apiErr != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, apiErr)
	}
	return ErrMalformedResponse
}

// PresignUpload retrieves a presigned PUT URL for a new video object. The
// upload itself is performed by the capture screen, not this client.
func (c *Client) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("key", key)
	values.Set("content_type", contentType)
	rel := &url.URL{Path: "/s3/presign", RawQuery: values.Encode()}

	var payload presignResponse
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return "", err
	}
	if payload.URL == "" {
		return "", fmt.Errorf("%w: missing url field", ErrMalformedResponse)
	}
	return payload.URL, nil
}

// statusError carries the HTTP status of a non-2xx response for
// classification by the caller.
type statusError struct {
	path string
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.path, e.code)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &statusError{path: rel.Path, code: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		return nil, fmt.Errorf("api base url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", base, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
