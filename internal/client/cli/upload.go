package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/haktiv/evidencekeeper/internal/client/upload"
	"github.com/haktiv/evidencekeeper/internal/common"
)

// Upload prompts for a file and a target control, then runs one upload
// session with a live progress display. A second upload cannot start while
// one is in flight.
func (a *App) Upload(ctx context.Context) error {
	path, err := GetSimpleText(a.reader, "Enter path to the evidence file", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if _, err := os.Stat(path); err != nil {
		printlnFn("Cannot read file:", err.Error())
		return err
	}

	controls := a.dataService.Controls()
	if len(controls) == 0 {
		printlnFn("No controls loaded; refresh first.")
		return common.ErrNotFound
	}
	printlnFn("Controls:")
	for _, c := range controls {
		printlnFn(fmt.Sprintf("  %4d  %s (%s)", c.ID, c.Name, c.Status))
	}

	raw, err := GetSimpleText(a.reader, "Enter control id", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	controlID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		printlnFn("Not a number:", raw)
		return err
	}

	sel := upload.Selection{
		Name:      filepath.Base(path),
		ControlID: controlID,
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
	if err := a.uploader.Select(sel); err != nil {
		printlnFn("Upload already in progress.")
		return err
	}

	done := make(chan struct{})
	go a.showProgress(done)

	created, err := a.uploader.Run(ctx)
	close(done)

	if err != nil {
		if errors.Is(err, common.ErrNothingSelected) {
			printlnFn("Select a file and a control first.")
		} else {
			printlnFn("Upload failed: " + err.Error())
		}
		return err
	}

	printlnFn(fmt.Sprintf("Uploaded %s (id %d); AI check queued.", created.Name, created.ID))
	return nil
}

// showProgress repaints the progress line until done closes.
func (a *App) showProgress(done <-chan struct{}) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			fmt.Printf("\rUploading... %3d%%", a.uploader.Progress())
		case <-done:
			fmt.Printf("\rUploading... %3d%%\n", a.uploader.Progress())
			return
		}
	}
}
