package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/haktiv/evidencekeeper/internal/client/models"
	"github.com/haktiv/evidencekeeper/internal/common"
)

// sessionCookieName matches the backend's session cookie. The value is
// obtained out-of-band via the browser SSO flow and pasted into the client.
const sessionCookieName = "sessionid"

// RESTClient talks to the compliance backend over its JSON/multipart REST
// surface. Credentials ride in a cookie jar; no token headers are set.
type RESTClient struct {
	baseURL *url.URL
	http    *http.Client
}

var _ Client = (*RESTClient)(nil)

// NewRESTClient builds a client for the given base URL (scheme://host[:port]).
// timeout bounds every request; zero means no bound.
func NewRESTClient(baseURL string, timeout time.Duration) (*RESTClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &RESTClient{
		baseURL: u,
		http:    &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

// SetSession installs the pasted session cookie into the jar so every
// subsequent request carries it.
func (c *RESTClient) SetSession(value string) {
	c.http.Jar.SetCookies(c.baseURL, []*http.Cookie{{
		Name:  sessionCookieName,
		Value: value,
		Path:  "/",
	}})
}

// LoginURL is where the user completes the external SSO redirect flow.
func (c *RESTClient) LoginURL() string {
	return c.baseURL.JoinPath("auth", "login").String() + "/"
}

func (c *RESTClient) endpoint(parts ...string) string {
	return c.baseURL.JoinPath(parts...).String() + "/"
}

// do executes the request and classifies the outcome. A transport-level
// failure wraps common.ErrUnavailable; a non-2xx response becomes *HTTPError.
// On success the body is decoded into out (when out is non-nil).
func (c *RESTClient) do(req *http.Request, out any) error {
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", common.ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{Status: resp.StatusCode, Detail: errorDetail(body)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// errorDetail extracts a human-readable message from an error body.
// The backend uses either {"detail": ...} or {"error": ...}.
func errorDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Detail != "" {
		return payload.Detail
	}
	return payload.Error
}

func (c *RESTClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *RESTClient) VerifySession(ctx context.Context) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.getJSON(ctx, c.endpoint("api", "user"), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *RESTClient) ListControls(ctx context.Context) ([]models.Control, error) {
	var controls []models.Control
	if err := c.getJSON(ctx, c.endpoint("api", "control"), &controls); err != nil {
		return nil, err
	}
	return controls, nil
}

func (c *RESTClient) ListEvidence(ctx context.Context) ([]models.Evidence, error) {
	var evidence []models.Evidence
	if err := c.getJSON(ctx, c.endpoint("api", "evidence"), &evidence); err != nil {
		return nil, err
	}
	return evidence, nil
}

func (c *RESTClient) UploadEvidence(ctx context.Context, controlID int64, name string, file io.Reader) (*models.Evidence, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("reading upload payload: %w", err)
	}
	if err := mw.WriteField("control", strconv.FormatInt(controlID, 10)); err != nil {
		return nil, err
	}
	if err := mw.WriteField("name", name); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("api", "evidence", "upload"), &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var created models.Evidence
	if err := c.do(req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *RESTClient) DeleteEvidence(ctx context.Context, ids []int64) error {
	payload, err := json.Marshal(map[string][]int64{"ids": ids})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.endpoint("api", "evidence", "delete"), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, nil)
}

func (c *RESTClient) ListComplianceChecks(ctx context.Context) ([]models.ComplianceCheck, error) {
	var payload struct {
		ComplianceChecks []models.ComplianceCheck `json:"compliance_checks"`
	}
	if err := c.getJSON(ctx, c.endpoint("api", "compliance", "checks"), &payload); err != nil {
		return nil, err
	}
	return payload.ComplianceChecks, nil
}

func (c *RESTClient) ComplianceStatus(ctx context.Context, evidenceID int64) (*models.ComplianceCheck, error) {
	var check models.ComplianceCheck
	path := c.endpoint("api", "compliance", "status", strconv.FormatInt(evidenceID, 10))
	if err := c.getJSON(ctx, path, &check); err != nil {
		return nil, err
	}
	return &check, nil
}

func (c *RESTClient) RetryComplianceCheck(ctx context.Context, checkID int64) (*models.ComplianceCheck, error) {
	path := c.endpoint("api", "compliance", "retry", strconv.FormatInt(checkID, 10))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, path, nil)
	if err != nil {
		return nil, err
	}
	var check models.ComplianceCheck
	if err := c.do(req, &check); err != nil {
		return nil, err
	}
	return &check, nil
}

func (c *RESTClient) UpdateControlStatus(ctx context.Context, controlID int64, status models.ControlStatus) (*models.Control, error) {
	payload, err := json.Marshal(map[string]any{"id": controlID, "status": status})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("api", "control", "status"), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var control models.Control
	if err := c.do(req, &control); err != nil {
		return nil, err
	}
	return &control, nil
}

func (c *RESTClient) Logout(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("api", "logout"), nil)
	if err != nil {
		return "", err
	}
	var payload struct {
		Message   string `json:"message"`
		LogoutURL string `json:"logout_url"`
	}
	if err := c.do(req, &payload); err != nil {
		return "", err
	}
	return payload.LogoutURL, nil
}

func (c *RESTClient) Ping(ctx context.Context) error {
	return c.getJSON(ctx, c.endpoint("api", "ping"), nil)
}
