// Command mockserver is a development stand-in for the compliance backend.
// It serves the same REST surface the CLI talks to, with in-memory data:
// uploads create a processing AI check that settles into a verdict after a
// short delay, so the client's polling can be exercised end to end.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/haktiv/evidencekeeper/internal/client/models"
	"github.com/haktiv/evidencekeeper/internal/filex"
)

// verdictDelay is how long an uploaded file stays in "processing" before the
// simulated AI settles on a verdict.
const verdictDelay = 5 * time.Second

type backend struct {
	mu        sync.Mutex
	uploadDir string
	controls  []models.Control
	evidence  []models.Evidence
	checks    []models.ComplianceCheck
	nextID    int64
}

func newBackend() *backend {
	now := time.Now()
	return &backend{
		controls: []models.Control{
			{ID: 1, Name: "Access Control Policy", Status: models.ControlImplemented, CreatedBy: 1, CreatedAt: now},
			{ID: 2, Name: "Data Encryption at Rest", Status: models.ControlNotImplemented, CreatedBy: 1, CreatedAt: now},
			{ID: 3, Name: "Incident Response Plan", Status: models.ControlNotImplemented, CreatedBy: 1, CreatedAt: now},
		},
		nextID: 100,
	}
}

func (b *backend) id() int64 {
	b.nextID++
	return b.nextID
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// requireSession rejects requests without the session cookie, the way the
// real backend does for everything behind SSO.
func requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("sessionid")
		if err != nil || c.Value == "" {
			writeDetail(w, http.StatusForbidden, "Authentication credentials were not provided.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *backend) user(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.UserProfile{
		ID: 1, Email: "cpo@acme.com", Role: "compliance_officer", Company: "Acme Corp",
	})
}

func (b *backend) listControls(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.controls)
}

func (b *backend) updateControlStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ID     int64                `json:"id"`
		Status models.ControlStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid payload")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.controls {
		if b.controls[i].ID == payload.ID {
			b.controls[i].Status = payload.Status
			writeJSON(w, http.StatusOK, b.controls[i])
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "control not found")
}

func (b *backend) listEvidence(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.evidence == nil {
		writeJSON(w, http.StatusOK, []models.Evidence{})
		return
	}
	writeJSON(w, http.StatusOK, b.evidence)
}

func (b *backend) uploadEvidence(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeDetail(w, http.StatusBadRequest, "expected multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	controlID, err := strconv.ParseInt(r.FormValue("control"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "control field is required")
		return
	}
	name := r.FormValue("name")
	if name == "" {
		name = header.Filename
	}

	if b.uploadDir != "" {
		data, err := io.ReadAll(file)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "reading upload")
			return
		}
		dest := filepath.Join(b.uploadDir, filepath.Base(header.Filename))
		if err := os.WriteFile(dest, data, 0o660); err != nil {
			writeDetail(w, http.StatusInternalServerError, "storing upload")
			return
		}
	}

	b.mu.Lock()
	ev := models.Evidence{
		ID:        b.id(),
		Control:   controlID,
		Name:      name,
		File:      "/media/evidence/" + header.Filename,
		Status:    models.EvidencePending,
		CreatedBy: 1,
		CreatedAt: time.Now(),
	}
	b.evidence = append(b.evidence, ev)

	check := models.ComplianceCheck{
		ID:         b.id(),
		EvidenceID: ev.ID,
		Status:     models.CheckProcessing,
		CreatedAt:  time.Now(),
	}
	b.checks = append(b.checks, check)
	b.mu.Unlock()

	b.scheduleVerdict(check.ID)
	writeJSON(w, http.StatusCreated, ev)
}

// scheduleVerdict settles a processing check after verdictDelay. Roughly two
// out of three uploads pass.
func (b *backend) scheduleVerdict(checkID int64) {
	time.AfterFunc(verdictDelay, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i := range b.checks {
			if b.checks[i].ID != checkID || b.checks[i].Status != models.CheckProcessing {
				continue
			}
			if rand.Intn(3) > 0 {
				b.checks[i].Status = models.CheckApproved
				b.checks[i].AIAnalysis = &models.AIAnalysis{
					IsCompliant:      true,
					Confidence:       0.8 + rand.Float64()*0.2,
					DetectedElements: []string{"policy statement", "review section"},
					Reasoning:        "Document addresses the control requirements.",
				}
				b.setEvidenceStatus(b.checks[i].EvidenceID, models.EvidenceApproved)
			} else {
				b.checks[i].Status = models.CheckRejected
				b.checks[i].AIAnalysis = &models.AIAnalysis{
					IsCompliant: false,
					Confidence:  0.5 + rand.Float64()*0.3,
					Reasoning:   "Document does not clearly address the control.",
				}
				b.checks[i].RejectionReason = "Required sections missing."
				b.checks[i].Recommendations = "Add the missing sections and upload again."
				b.setEvidenceStatus(b.checks[i].EvidenceID, models.EvidenceRejected)
			}
			b.checks[i].UpdatedAt = time.Now()
		}
	})
}

// setEvidenceStatus is called with b.mu held.
func (b *backend) setEvidenceStatus(evidenceID int64, status models.EvidenceStatus) {
	for i := range b.evidence {
		if b.evidence[i].ID == evidenceID {
			b.evidence[i].Status = status
		}
	}
}

func (b *backend) deleteEvidence(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		IDs []int64 `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid payload")
		return
	}

	doomed := make(map[int64]bool, len(payload.IDs))
	for _, id := range payload.IDs {
		doomed[id] = true
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	kept := b.evidence[:0]
	for _, ev := range b.evidence {
		if !doomed[ev.ID] {
			kept = append(kept, ev)
		}
	}
	b.evidence = kept

	keptChecks := b.checks[:0]
	for _, c := range b.checks {
		if !doomed[c.EvidenceID] {
			keptChecks = append(keptChecks, c)
		}
	}
	b.checks = keptChecks

	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (b *backend) listChecks(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]models.ComplianceCheck, len(b.checks))
	copy(out, b.checks)
	for i := range out {
		out[i].EvidenceName, out[i].ControlName = b.names(out[i].EvidenceID)
	}
	writeJSON(w, http.StatusOK, map[string]any{"compliance_checks": out})
}

// names is called with b.mu held.
func (b *backend) names(evidenceID int64) (string, string) {
	for _, ev := range b.evidence {
		if ev.ID != evidenceID {
			continue
		}
		for _, c := range b.controls {
			if c.ID == ev.Control {
				return ev.Name, c.Name
			}
		}
		return ev.Name, ""
	}
	return "", ""
}

func (b *backend) checkStatus(w http.ResponseWriter, r *http.Request) {
	evidenceID, err := strconv.ParseInt(chi.URLParam(r, "evidenceID"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid evidence id")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.checks {
		if c.EvidenceID == evidenceID {
			c.EvidenceName, c.ControlName = b.names(c.EvidenceID)
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "no check for this evidence")
}

func (b *backend) retryCheck(w http.ResponseWriter, r *http.Request) {
	checkID, err := strconv.ParseInt(chi.URLParam(r, "checkID"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid check id")
		return
	}

	b.mu.Lock()
	for i := range b.checks {
		if b.checks[i].ID == checkID {
			b.checks[i].Status = models.CheckProcessing
			b.checks[i].AIAnalysis = nil
			b.checks[i].RejectionReason = ""
			b.checks[i].Recommendations = ""
			b.setEvidenceStatus(b.checks[i].EvidenceID, models.EvidencePending)
			check := b.checks[i]
			b.mu.Unlock()
			b.scheduleVerdict(checkID)
			writeJSON(w, http.StatusOK, check)
			return
		}
	}
	b.mu.Unlock()
	writeDetail(w, http.StatusNotFound, "check not found")
}

func (b *backend) logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message":    "logged out",
		"logout_url": "http://localhost:8000/auth/logout/done/",
	})
}

func ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ssoLogin fakes the identity-provider hop: it sets a session cookie and
// shows its value so it can be pasted into the CLI.
func ssoLogin(w http.ResponseWriter, r *http.Request) {
	value := fmt.Sprintf("mock-session-%d", rand.Int63())
	http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: value, Path: "/"})
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "Signed in. Paste this session cookie into the CLI:\n\n%s\n", value)
}

func main() {
	addr := flag.String("addr", ":8000", "listen address")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	b := newBackend()
	uploadDir, err := filex.EnsureSubDir("uploads")
	if err != nil {
		logger.Warn("upload directory unavailable, files will not be stored", "err", err)
	} else {
		b.uploadDir = uploadDir
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/auth/login/", ssoLogin)
	r.Get("/api/ping/", ping)

	r.Group(func(r chi.Router) {
		r.Use(requireSession)

		r.Get("/api/user/", b.user)
		r.Get("/api/control/", b.listControls)
		r.Post("/api/control/status/", b.updateControlStatus)
		r.Get("/api/evidence/", b.listEvidence)
		r.Post("/api/evidence/upload/", b.uploadEvidence)
		r.Delete("/api/evidence/delete/", b.deleteEvidence)
		r.Get("/api/compliance/checks/", b.listChecks)
		r.Get("/api/compliance/status/{evidenceID}/", b.checkStatus)
		r.Post("/api/compliance/retry/{checkID}/", b.retryCheck)
		r.Post("/api/logout/", b.logout)
	})

	logger.Info("mock compliance backend listening", "addr", *addr)
	if err := http.ListenAndServe(*addr, r); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
