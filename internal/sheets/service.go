package sheets

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

// valueInputOption makes the service parse cell values the way a typed-in
// value would be, so dates and numbers land as dates and numbers.
const valueInputOption = "USER_ENTERED"

// Service implements API against the Google Sheets v4 API for a single
// spreadsheet document.
type Service struct {
	svc           *sheetsv4.Service
	spreadsheetID string
}

// NewService builds a Sheets v4 client authenticated with ts, scoped to one
// spreadsheet document.
func NewService(ctx context.Context, ts oauth2.TokenSource, spreadsheetID string) (*Service, error) {
	svc, err := sheetsv4.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}
	return &Service{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// TabTitles returns the titles of every tab in the document.
func (s *Service) TabTitles(ctx context.Context) ([]string, error) {
	doc, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get spreadsheet metadata: %w", err)
	}
	titles := make([]string, 0, len(doc.Sheets))
	for _, sheet := range doc.Sheets {
		if sheet.Properties != nil {
			titles = append(titles, sheet.Properties.Title)
		}
	}
	return titles, nil
}

// AddTab creates a new tab titled title.
func (s *Service) AddTab(ctx context.Context, title string) error {
	req := &sheetsv4.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsv4.Request{
			{
				AddSheet: &sheetsv4.AddSheetRequest{
					Properties: &sheetsv4.SheetProperties{Title: title},
				},
			},
		},
	}
	_, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("batch update add sheet: %w", err)
	}
	return nil
}

// WriteHeader writes row at tab!A1.
func (s *Service) WriteHeader(ctx context.Context, tab string, row []interface{}) error {
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{row}}
	_, err := s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, tab+"!A1", vr).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update header values: %w", err)
	}
	return nil
}

// AppendRow appends row after the last row with content in the tab.
func (s *Service) AppendRow(ctx context.Context, tab string, row []interface{}) error {
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{row}}
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, tab+"!A1", vr).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append values: %w", err)
	}
	return nil
}
