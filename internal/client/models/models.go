// Package models defines the data types exchanged with the compliance
// backend: controls, evidence records, compliance checks, and the user
// profile returned by the session endpoint.
package models

import "time"

// ControlStatus classifies a control's implementation state.
type ControlStatus string

const (
	ControlImplemented    ControlStatus = "implemented"
	ControlNotImplemented ControlStatus = "not_implemented"
)

// Control is a named compliance requirement evidence is uploaded against.
// Controls are read-only reference data for the client.
type Control struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Status    ControlStatus `json:"status"`
	CreatedBy int64         `json:"created_by"`
	CreatedAt time.Time     `json:"created_at"`
}

// EvidenceStatus is the verdict stored on the evidence record itself.
// A record that has not yet received a verdict reports StatusPending.
type EvidenceStatus string

const (
	EvidenceApproved EvidenceStatus = "approved"
	EvidenceRejected EvidenceStatus = "rejected"
	EvidencePending  EvidenceStatus = "pending"
)

// Evidence is a file artifact submitted to satisfy a control. The server
// assigns ID on upload; Status may be overwritten out-of-band by AI
// processing, which the client observes only through compliance checks.
type Evidence struct {
	ID        int64          `json:"id"`
	Control   int64          `json:"control"`
	Name      string         `json:"name"`
	File      string         `json:"file"`
	Status    EvidenceStatus `json:"status"`
	CreatedBy int64          `json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
}

// CheckStatus classifies an AI compliance verdict.
type CheckStatus string

const (
	CheckProcessing CheckStatus = "processing"
	CheckApproved   CheckStatus = "approved"
	CheckRejected   CheckStatus = "rejected"
	CheckError      CheckStatus = "error"
)

// AIAnalysis is the structured result attached to a finished check.
type AIAnalysis struct {
	IsCompliant      bool     `json:"is_compliant"`
	Confidence       float64  `json:"confidence"`
	DetectedElements []string `json:"detected_elements"`
	Reasoning        string   `json:"reasoning"`
}

// ComplianceCheck is an asynchronously produced AI verdict keyed by
// evidence id. At most one active check exists per evidence record.
type ComplianceCheck struct {
	ID              int64       `json:"id"`
	EvidenceID      int64       `json:"evidence_id"`
	EvidenceName    string      `json:"evidence_name,omitempty"`
	ControlName     string      `json:"control_name,omitempty"`
	Status          CheckStatus `json:"status"`
	AIAnalysis      *AIAnalysis `json:"ai_analysis,omitempty"`
	RejectionReason string      `json:"rejection_reason,omitempty"`
	Recommendations string      `json:"recommendations,omitempty"`
	CreatedAt       time.Time   `json:"created_at,omitempty"`
	UpdatedAt       time.Time   `json:"updated_at,omitempty"`
}

// UserProfile is the identity returned by the session endpoint.
type UserProfile struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Company string `json:"company"`
}

// DisplayName picks the friendliest non-empty identity string.
func (u UserProfile) DisplayName() string {
	if u.Email != "" {
		return u.Email
	}
	return "user"
}
