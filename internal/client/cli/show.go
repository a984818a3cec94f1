package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

// Show prints one evidence record and, when present, its AI verdict with
// the full analysis payload.
func (a *App) Show(ctx context.Context) error {
	raw, err := GetSimpleText(a.reader, "Enter evidence id to show", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		printlnFn("Not a number:", raw)
		return err
	}

	e, ok := a.store.Get(id)
	if !ok {
		printlnFn("No evidence with id", id)
		return nil
	}

	printlnFn("Name:    " + e.Name)
	printlnFn("Control: " + a.dataService.ControlName(e.Control))
	printlnFn("Status:  " + string(e.Status))
	printlnFn("File:    " + e.File)
	printlnFn("Added:   " + e.CreatedAt.Format("2006-01-02 15:04"))

	check, ok := a.overlay.DetailsOf(id)
	if !ok {
		// a fresh single-record read may know more than the overlay
		fetched, err := a.dataService.CheckFor(ctx, id)
		if err != nil || fetched == nil {
			printlnFn("No AI verdict yet.")
			return nil
		}
		check = *fetched
	}

	printlnFn(fmt.Sprintf("AI verdict: %s (check #%d)", check.Status, check.ID))
	if an := check.AIAnalysis; an != nil {
		printlnFn(fmt.Sprintf("  Compliant:  %v", an.IsCompliant))
		printlnFn(fmt.Sprintf("  Confidence: %.0f%%", an.Confidence*100))
		if len(an.DetectedElements) > 0 {
			printlnFn("  Detected:   " + strings.Join(an.DetectedElements, ", "))
		}
		if an.Reasoning != "" {
			printlnFn("  Reasoning:  " + an.Reasoning)
		}
	}
	if check.RejectionReason != "" {
		printlnFn("  Rejected:   " + check.RejectionReason)
	}
	if check.Recommendations != "" {
		printlnFn("  Recommend:  " + check.Recommendations)
	}
	return nil
}
