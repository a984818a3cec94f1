package cli

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/haktiv/evidencekeeper/internal/client/models"
)

// SetControl flips a control between implemented and not_implemented.
func (a *App) SetControl(ctx context.Context) error {
	raw, err := GetSimpleText(a.reader, "Enter control id", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		printlnFn("Not a number:", raw)
		return err
	}

	status, err := GetSimpleText(a.reader, "Enter status (implemented/not_implemented)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	s := models.ControlStatus(status)
	if s != models.ControlImplemented && s != models.ControlNotImplemented {
		printlnFn("Unknown status:", status)
		return nil
	}

	if err := a.dataService.UpdateControlStatus(ctx, id, s); err != nil {
		printlnFn("Update failed: " + err.Error())
		return err
	}
	printlnFn("Control updated.")
	return nil
}

// Retry re-queues a rejected or errored AI check.
func (a *App) Retry(ctx context.Context) error {
	raw, err := GetSimpleText(a.reader, "Enter check id to retry", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		printlnFn("Not a number:", raw)
		return err
	}

	check, err := a.dataService.RetryCheck(ctx, id)
	if err != nil {
		printlnFn("Retry failed: " + err.Error())
		return err
	}
	printlnFn("Check #" + strconv.FormatInt(check.ID, 10) + " re-queued: " + string(check.Status))
	return nil
}
