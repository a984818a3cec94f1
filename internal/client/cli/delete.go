package cli

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
)

// Delete collects one or more evidence ids, asks for confirmation against
// the resolved names, and commits a single batched delete. On a backend
// failure the confirmation stays open so the user can retry or cancel.
func (a *App) Delete(ctx context.Context) error {
	raw, err := GetSimpleText(a.reader, "Enter evidence id(s) to delete (comma-separated)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			printlnFn("Not a number:", part)
			return err
		}
		ids = append(ids, id)
	}

	if !a.dataService.RequestDelete(ids) {
		printlnFn("Nothing to delete with those ids.")
		return nil
	}

	for {
		answer, err := GetSimpleText(a.reader,
			"Delete "+a.dataService.Dialog().Summary()+"? (y/n)", os.Stdout)
		if err != nil {
			a.dataService.CancelDelete()
			return err
		}

		switch strings.ToLower(answer) {
		case "y", "yes":
			if err := a.dataService.ConfirmDelete(ctx); err != nil {
				printlnFn("Delete failed: " + err.Error() + " (retry or answer n to cancel)")
				continue
			}
			printlnFn("Deleted.")
			return nil
		case "n", "no":
			a.dataService.CancelDelete()
			printlnFn("Cancelled.")
			return nil
		default:
			printlnFn("Please answer y or n.")
		}
	}
}
