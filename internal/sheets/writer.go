// Package sheets appends classified transactions to a monthly spreadsheet
// tab, creating the tab with its header row on first use.
package sheets

import (
	"context"
	"fmt"

	"github.com/dvloznov/txnsheet/internal/domain"
)

// API is the slice of the spreadsheet service the writer needs. The concrete
// implementation lives in service.go; tests substitute a recording fake.
type API interface {
	// TabTitles lists the titles of all tabs in the document.
	TabTitles(ctx context.Context) ([]string, error)
	// AddTab creates a new empty tab with the given title.
	AddTab(ctx context.Context, title string) error
	// WriteHeader writes row as the first row of the tab.
	WriteHeader(ctx context.Context, tab string, row []interface{}) error
	// AppendRow appends row after existing content in the tab.
	AppendRow(ctx context.Context, tab string, row []interface{}) error
}

// Writer ensures month tabs exist and appends transaction rows to them.
type Writer struct {
	api API
}

// NewWriter creates a writer on top of the given spreadsheet API.
func NewWriter(api API) *Writer {
	return &Writer{api: api}
}

// EnsureMonthTab creates the tab and writes the header row when no tab with
// that exact title exists. Calling it again for an existing title is a no-op.
// Two concurrent first-calls for the same month can both observe the tab as
// absent and both attempt creation; what happens then is the spreadsheet
// service's duplicate-title contract, not something coordinated here.
func (w *Writer) EnsureMonthTab(ctx context.Context, tab string) error {
	titles, err := w.api.TabTitles(ctx)
	if err != nil {
		return domain.NewError(domain.KindWriter, fmt.Errorf("list tab titles: %w", err))
	}

	for _, title := range titles {
		if title == tab {
			return nil
		}
	}

	if err := w.api.AddTab(ctx, tab); err != nil {
		return domain.NewError(domain.KindWriter, fmt.Errorf("add tab %q: %w", tab, err))
	}
	if err := w.api.WriteHeader(ctx, tab, domain.HeaderRow); err != nil {
		return domain.NewError(domain.KindWriter, fmt.Errorf("write header for %q: %w", tab, err))
	}
	return nil
}

// Append writes the record's 6-cell row to the tab. One append call, no
// dedup, no retry; repeated calls append repeated rows.
func (w *Writer) Append(ctx context.Context, tab string, record domain.TransactionRecord) error {
	if err := w.api.AppendRow(ctx, tab, record.SheetRow()); err != nil {
		return domain.NewError(domain.KindWriter, fmt.Errorf("append row to %q: %w", tab, err))
	}
	return nil
}

// Write is the full side effect for one classified transaction: derive the
// month tab, ensure it exists, append the row.
func (w *Writer) Write(ctx context.Context, record domain.TransactionRecord) (string, error) {
	tab := record.MonthTab()
	if err := w.EnsureMonthTab(ctx, tab); err != nil {
		return tab, err
	}
	if err := w.Append(ctx, tab, record); err != nil {
		return tab, err
	}
	return tab, nil
}
