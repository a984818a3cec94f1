package cli

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/haktiv/evidencekeeper/internal/common"
)

// Login establishes an authenticated session. A persisted cookie is tried
// first; when the backend rejects it (or none is stored) the user completes
// the SSO flow in a browser and pastes the resulting session cookie here.
// The session check runs once per attempt, never in a retry loop.
func (a *App) Login(ctx context.Context) error {
	if restored, err := a.authService.Restore(ctx); err != nil {
		log.Printf("error: %v", err)
	} else if restored {
		if a.verify(ctx) {
			return nil
		}
	}

	printlnFn("Not signed in. Open this URL in your browser and complete the sign-in:")
	printlnFn("  " + a.authService.LoginURL())

	cookie, err := GetSessionCookie(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if cookie == "" {
		printlnFn("No cookie entered.")
		return nil
	}

	if err := a.authService.SaveSession(ctx, cookie); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	a.verify(ctx)
	return nil
}

// verify runs the single session check and, on success, loads the data set.
// On a network failure the cached data set is offered read-only instead.
func (a *App) verify(ctx context.Context) bool {
	profile, err := a.authService.Verify(ctx)
	if err != nil {
		if errors.Is(err, common.ErrUnavailable) {
			printlnFn("Backend unreachable, trying local cache...")
			if cerr := a.dataService.LoadFromCache(ctx); cerr == nil {
				a.setMode(ModeOffline)
				printlnFn("Showing cached data (read-only).")
				return false
			}
			printlnFn("No cached data available.")
			return false
		}
		printlnFn("Session check failed: " + err.Error())
		return false
	}

	a.userName = profile.DisplayName()
	a.setMode(ModeOnline)
	printlnFn("Signed in as " + a.userName)

	if err := a.dataService.Refresh(ctx); err != nil {
		log.Printf("initial data load failed: %v", err)
	}
	return true
}

// Logout ends the backend session and points the user at the SSO logout page.
func (a *App) Logout(ctx context.Context) error {
	logoutURL, err := a.authService.Logout(ctx)
	a.userName = ""
	if err != nil {
		log.Printf("logout: %v", err)
		return err
	}
	printlnFn("Signed out. Finish in your browser: " + logoutURL)
	return nil
}

// Whoami re-reads the profile from the session endpoint.
func (a *App) Whoami(ctx context.Context) error {
	profile, err := a.authService.Verify(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn("Email:   " + profile.Email)
	printlnFn("Role:    " + profile.Role)
	printlnFn("Company: " + profile.Company)
	return nil
}
