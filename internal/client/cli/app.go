package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/haktiv/evidencekeeper/internal/client/api"
	"github.com/haktiv/evidencekeeper/internal/client/cache"
	"github.com/haktiv/evidencekeeper/internal/client/config"
	"github.com/haktiv/evidencekeeper/internal/client/models"
	"github.com/haktiv/evidencekeeper/internal/client/services"
	"github.com/haktiv/evidencekeeper/internal/client/session"
	"github.com/haktiv/evidencekeeper/internal/client/state"
	"github.com/haktiv/evidencekeeper/internal/client/upload"
	"github.com/haktiv/evidencekeeper/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// dataService is the slice of the sync controller the commands use.
type dataService interface {
	Refresh(ctx context.Context) error
	RefreshChecks(ctx context.Context)
	RequestDelete(ids []int64) bool
	ConfirmDelete(ctx context.Context) error
	CancelDelete() bool
	Dialog() *state.DeleteDialog
	Controls() []models.Control
	ControlName(id int64) string
	UpdateControlStatus(ctx context.Context, id int64, status models.ControlStatus) error
	CheckFor(ctx context.Context, evidenceID int64) (*models.ComplianceCheck, error)
	RetryCheck(ctx context.Context, checkID int64) (*models.ComplianceCheck, error)
	LoadFromCache(ctx context.Context) error
	StartCheckWatcher(ctx context.Context, interval time.Duration)
}

// uploadRunner is the slice of the upload orchestrator the commands use.
type uploadRunner interface {
	Select(sel upload.Selection) error
	Run(ctx context.Context) (*models.Evidence, error)
	Phase() upload.Phase
	Progress() int
	Teardown()
}

type App struct {
	config      *config.Config
	authService services.AuthService
	dataService dataService
	uploader    uploadRunner
	store       *state.EvidenceStore
	overlay     *state.ComplianceOverlay
	cache       *cache.Cache
	log         logging.Logger
	userName    string
	Mode        Mode
	reader      *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	apiClient, err := api.NewRESTClient(c.APIBaseURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	var cacheDB *cache.Cache
	var sessions *session.Store
	if c.CacheDSN != "" {
		cacheDB, err = cache.Open(ctx, c.CacheDSN)
		if err != nil {
			log.Warn(ctx, "local cache unavailable, continuing without offline data", "err", err)
			cacheDB = nil
		} else {
			sessions = session.NewStore(cacheDB.Metadata)
		}
	}

	store := state.NewEvidenceStore()
	overlay := state.NewComplianceOverlay()
	auth := services.NewAuthService(apiClient, sessions)
	data := services.NewSyncService(apiClient, store, overlay, cacheDB, log)
	uploader := upload.NewOrchestrator(
		apiClient, store,
		upload.NewTickerEstimator(200*time.Millisecond),
		c.UploadCooldown,
		data.OnUploadComplete,
	)

	return &App{
		config:      c,
		authService: auth,
		dataService: data,
		uploader:    uploader,
		store:       store,
		overlay:     overlay,
		cache:       cacheDB,
		log:         log,
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		printlnFn("Switched to " + string(mode) + " mode")
	}
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) Run(ctx context.Context) {
	defer a.uploader.Teardown()
	if a.cache != nil {
		defer a.cache.Close()
	}
	a.Root(ctx)
}

// StartOnlineStatusWatcher probes backend liveness every interval and flips
// the displayed mode accordingly. Blocks until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.authService.Ping(pctx)
			cancel()

			if err != nil {
				if a.Mode == ModeOnline {
					a.setMode(ModeOffline)
				}
			} else {
				if a.Mode != ModeOnline {
					a.setMode(ModeOnline)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
