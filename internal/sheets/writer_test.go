package sheets

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/dvloznov/txnsheet/internal/domain"
)

// fakeAPI records calls and plays back a configurable tab list.
type fakeAPI struct {
	titles    []string
	titlesErr error
	addErr    error

	addedTabs    []string
	headers      map[string][]interface{}
	appendedTabs []string
	appendedRows [][]interface{}
}

func newFakeAPI(titles ...string) *fakeAPI {
	return &fakeAPI{titles: titles, headers: map[string][]interface{}{}}
}

func (f *fakeAPI) TabTitles(ctx context.Context) ([]string, error) {
	if f.titlesErr != nil {
		return nil, f.titlesErr
	}
	return f.titles, nil
}

func (f *fakeAPI) AddTab(ctx context.Context, title string) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.addedTabs = append(f.addedTabs, title)
	f.titles = append(f.titles, title)
	return nil
}

func (f *fakeAPI) WriteHeader(ctx context.Context, tab string, row []interface{}) error {
	f.headers[tab] = row
	return nil
}

func (f *fakeAPI) AppendRow(ctx context.Context, tab string, row []interface{}) error {
	f.appendedTabs = append(f.appendedTabs, tab)
	f.appendedRows = append(f.appendedRows, row)
	return nil
}

func TestEnsureMonthTab_CreatesWithHeader(t *testing.T) {
	api := newFakeAPI("Sheet1")
	w := NewWriter(api)

	if err := w.EnsureMonthTab(context.Background(), "March"); err != nil {
		t.Fatalf("EnsureMonthTab() error = %v", err)
	}

	if len(api.addedTabs) != 1 || api.addedTabs[0] != "March" {
		t.Errorf("added tabs = %v, want [March]", api.addedTabs)
	}
	wantHeader := []interface{}{"Date", "Type", "Amount", "Receiver", "Sent From", "Is Transaction?"}
	if !reflect.DeepEqual(api.headers["March"], wantHeader) {
		t.Errorf("header = %v, want %v", api.headers["March"], wantHeader)
	}
}

func TestEnsureMonthTab_Idempotent(t *testing.T) {
	api := newFakeAPI("Sheet1")
	w := NewWriter(api)

	for i := 0; i < 2; i++ {
		if err := w.EnsureMonthTab(context.Background(), "March"); err != nil {
			t.Fatalf("EnsureMonthTab() call %d error = %v", i+1, err)
		}
	}

	if len(api.addedTabs) != 1 {
		t.Errorf("tab created %d times, want exactly once", len(api.addedTabs))
	}
}

func TestEnsureMonthTab_ExactTitleMatch(t *testing.T) {
	// Title comparison is case-sensitive; "march" does not satisfy "March".
	api := newFakeAPI("march")
	w := NewWriter(api)

	if err := w.EnsureMonthTab(context.Background(), "March"); err != nil {
		t.Fatalf("EnsureMonthTab() error = %v", err)
	}
	if len(api.addedTabs) != 1 {
		t.Errorf("added tabs = %v, want a new March tab", api.addedTabs)
	}
}

func TestEnsureMonthTab_ListFailure(t *testing.T) {
	api := newFakeAPI()
	api.titlesErr = errors.New("quota exceeded")
	w := NewWriter(api)

	err := w.EnsureMonthTab(context.Background(), "March")
	if err == nil {
		t.Fatal("EnsureMonthTab() expected error")
	}
	if kind, ok := domain.KindOf(err); !ok || kind != domain.KindWriter {
		t.Errorf("error kind = %v, want writer", kind)
	}
}

func TestWrite_AppendsScenarioRow(t *testing.T) {
	api := newFakeAPI("Sheet1")
	w := NewWriter(api)

	record := domain.TransactionRecord{
		TransactionMessage: true,
		TransactionType:    "debit",
		TransactionAmount:  450,
		TransactionDate:    "04/03/2024",
		Receiver:           "Raman",
		SentFrom:           "",
	}

	tab, err := w.Write(context.Background(), record)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if tab != "March" {
		t.Errorf("tab = %q, want March", tab)
	}

	wantRow := []interface{}{"04/03/2024", "Debit", float64(450), "Raman", "", "Yes"}
	if len(api.appendedRows) != 1 || !reflect.DeepEqual(api.appendedRows[0], wantRow) {
		t.Errorf("appended rows = %v, want [%v]", api.appendedRows, wantRow)
	}
	if api.appendedTabs[0] != "March" {
		t.Errorf("appended to %q, want March", api.appendedTabs[0])
	}
}

func TestWrite_UnknownTabFallback(t *testing.T) {
	api := newFakeAPI()
	w := NewWriter(api)

	record := domain.TransactionRecord{
		TransactionMessage: true,
		TransactionType:    "credit",
		TransactionDate:    "not-a-date",
	}

	tab, err := w.Write(context.Background(), record)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if tab != "Unknown" {
		t.Errorf("tab = %q, want Unknown", tab)
	}
	if len(api.addedTabs) != 1 || api.addedTabs[0] != "Unknown" {
		t.Errorf("added tabs = %v, want [Unknown]", api.addedTabs)
	}
}
