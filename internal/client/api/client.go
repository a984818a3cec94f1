// Package api implements the REST transport to the compliance backend.
//
// Every call attaches the ambient session cookie, serializes the request
// body, and classifies the outcome into exactly one of: decoded payload,
// *HTTPError (non-2xx), or an error wrapping common.ErrUnavailable (the
// request never completed). There is no retry or backoff at this layer;
// callers decide how to surface failures.
package api

import (
	"context"
	"io"

	"github.com/haktiv/evidencekeeper/internal/client/models"
)

// Client is the outbound surface consumed by the service layer.
type Client interface {
	// VerifySession calls the identity endpoint and returns the profile.
	VerifySession(ctx context.Context) (*models.UserProfile, error)

	// ListControls fetches all controls visible to the session.
	ListControls(ctx context.Context) ([]models.Control, error)

	// ListEvidence fetches all evidence records visible to the session.
	ListEvidence(ctx context.Context) ([]models.Evidence, error)

	// UploadEvidence submits one file against a control as multipart form
	// data and returns the created record. Not idempotent; the caller must
	// prevent double submission.
	UploadEvidence(ctx context.Context, controlID int64, name string, file io.Reader) (*models.Evidence, error)

	// DeleteEvidence removes the given records in one batched request.
	DeleteEvidence(ctx context.Context, ids []int64) error

	// ListComplianceChecks fetches all AI verdicts for the session's company.
	ListComplianceChecks(ctx context.Context) ([]models.ComplianceCheck, error)

	// ComplianceStatus fetches the check for a single evidence record.
	ComplianceStatus(ctx context.Context, evidenceID int64) (*models.ComplianceCheck, error)

	// RetryComplianceCheck re-queues a rejected or errored check.
	RetryComplianceCheck(ctx context.Context, checkID int64) (*models.ComplianceCheck, error)

	// UpdateControlStatus marks a control implemented / not implemented.
	UpdateControlStatus(ctx context.Context, controlID int64, status models.ControlStatus) (*models.Control, error)

	// Logout terminates the backend session and returns the SSO logout URL
	// the user should visit to complete the sign-out.
	Logout(ctx context.Context) (string, error)

	// Ping checks backend reachability.
	Ping(ctx context.Context) error

	// SetSession installs the session cookie used on subsequent calls.
	SetSession(value string)

	// LoginURL is the browser entry point for the external SSO flow.
	LoginURL() string
}
