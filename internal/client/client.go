// Package client wraps the remote dating-service admin API. Every method
// fetches one immutable snapshot or applies one moderation action; the
// console holds no connection state beyond the shared http.Client.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"dating-admin-console/internal/models"
)

// APIError carries the backend's human-readable failure message. The
// boundary defines no structured error codes, so callers display Message and
// treat all failures identically.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

type Client struct {
	baseURL string
	http    *http.Client
	log     *logrus.Logger
}

func New(baseURL string, timeout time.Duration, log *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Admin is the operator identity returned by the backend login endpoint.
type Admin struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

func (c *Client) AdminLogin(ctx context.Context, username, password string) (Admin, error) {
	body := map[string]string{"username": username, "password": password}
	var out struct {
		Admin Admin `json:"admin"`
	}
	err := c.do(ctx, http.MethodPost, "/admin/login", body, &out, "Login failed")
	return out.Admin, err
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := c.do(ctx, http.MethodGet, "/admin/users", nil, &users, "Failed to fetch users")
	return users, err
}

func (c *Client) GetUser(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/admin/users/%d", id), nil, &user, "Failed to fetch user details")
	return user, err
}

// CreateUser forwards the operator-supplied profile fields; the backend
// assigns the id.
func (c *Client) CreateUser(ctx context.Context, fields map[string]any) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPost, "/admin/users", fields, &user, "Failed to create user")
	return user, err
}

func (c *Client) UpdateUser(ctx context.Context, id uint, fields map[string]any) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/users/%d", id), fields, &user, "Failed to update user")
	return user, err
}

func (c *Client) SetBlocked(ctx context.Context, id uint, blocked bool) (models.User, error) {
	body := map[string]bool{"blocked": blocked}
	var user models.User
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/admin/users/%d/block", id), body, &user, "Failed to update user status")
	return user, err
}

func (c *Client) DeleteUser(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/users/%d", id), nil, nil, "Failed to delete user")
}

func (c *Client) ListMatches(ctx context.Context) ([]models.Match, error) {
	var matches []models.Match
	err := c.do(ctx, http.MethodGet, "/admin/matches", nil, &matches, "Failed to fetch matches")
	return matches, err
}

func (c *Client) ListMessages(ctx context.Context) ([]models.Message, error) {
	var messages []models.Message
	err := c.do(ctx, http.MethodGet, "/admin/messages", nil, &messages, "Failed to fetch messages")
	return messages, err
}

// GetThread fetches the server-side thread between two users. Callers still
// run the local filter+sort over the result so both forms agree.
func (c *Client) GetThread(ctx context.Context, userIDA, userIDB uint) ([]models.Message, error) {
	var messages []models.Message
	path := fmt.Sprintf("/admin/messages/%d/%d", userIDA, userIDB)
	err := c.do(ctx, http.MethodGet, path, nil, &messages, "Failed to fetch conversation")
	return messages, err
}

func (c *Client) ListReports(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report
	err := c.do(ctx, http.MethodGet, "/admin/reports", nil, &reports, "Failed to fetch reports")
	return reports, err
}

func (c *Client) SetReportStatus(ctx context.Context, id uint, status models.ReportStatus) (models.Report, error) {
	body := map[string]models.ReportStatus{"status": status}
	var report models.Report
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/reports/%d", id), body, &report, "Failed to update report")
	return report, err
}

func (c *Client) ListSwipes(ctx context.Context) ([]models.Swipe, error) {
	var swipes []models.Swipe
	err := c.do(ctx, http.MethodGet, "/admin/swipes", nil, &swipes, "Failed to fetch swipes")
	return swipes, err
}

func (c *Client) GetAnalytics(ctx context.Context) (models.AnalyticsSnapshot, error) {
	var snapshot models.AnalyticsSnapshot
	err := c.do(ctx, http.MethodGet, "/admin/analytics", nil, &snapshot, "Failed to fetch analytics")
	return snapshot, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, fallback string) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{
			"method": method,
			"path":   path,
		}).Warn("api request failed")
		return fmt.Errorf("api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := c.decodeError(resp, fallback)
		c.log.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		}).Warn(apiErr.Message)
		return apiErr
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError extracts the backend's {"error": "..."} message, falling back
// to a generic per-endpoint message when the body carries none.
func (c *Client) decodeError(resp *http.Response, fallback string) *APIError {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: fallback}
}
