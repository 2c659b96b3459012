// Package undo provides the runner that steps the journal file through
// its backup history.
package undo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/trail/pkg/backup"
	"tableflip.dev/trail/pkg/store"
	"tableflip.dev/trail/pkg/timeutil"
)

// Undo restores the previous journal state, or with Redo set, reverses
// the last undo.
type Undo struct {
	Store *store.Store

	// Redo steps forward instead of back.
	Redo bool
	// List prints the available snapshots instead of restoring.
	List bool
}

// Do steps the file through its history and reports the result.
func (n *Undo) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not undo, no store")
	}

	if n.List {
		return n.list()
	}

	verb := "undid"
	step := n.Store.Undo
	if n.Redo {
		verb = "redid"
		step = n.Store.Redo
	}
	if err := step(); err != nil {
		if errors.Is(err, backup.ErrNoHistory) {
			if n.Redo {
				fmt.Fprintln(color.Output, "nothing to redo")
			} else {
				fmt.Fprintln(color.Output, "nothing to undo")
			}
			return nil
		}
		return err
	}

	j, err := n.Store.Load()
	if err != nil {
		return err
	}
	fmt.Fprintf(color.Output, "%s last change, journal now has %d entries in %d sections\n",
		verb, j.Len(), len(j.Sections()))
	return nil
}

func (n *Undo) list() error {
	stamps := n.Store.History()
	if len(stamps) == 0 {
		fmt.Fprintln(color.Output, "no snapshots")
		return nil
	}

	_, _ = fmt.Fprintln(color.Output, "")

	now := time.Now()
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Steps back"), bold.Sprint("Taken"), bold.Sprint("Age"))
	for i := len(stamps) - 1; i >= 0; i-- {
		taken := stamps[i]
		tbl.AddRow(len(stamps)-i, taken.Format("2006-01-02 15:04:05"), timeutil.FormatWindow(now.Sub(taken)))
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
	return nil
}
