package domain

import (
	"time"
)

// TransactionRecord is the structured result of classifying one notification
// message. JSON tags match the response schema sent to the model, so the
// classifier output and the append-endpoint request body share this shape.
// When TransactionMessage is false the remaining fields carry no guarantee
// and must be ignored.
type TransactionRecord struct {
	TransactionMessage bool    `json:"transaction_message"`
	TransactionType    string  `json:"transaction_type"`
	TransactionAmount  float64 `json:"transaction_amount"`
	TransactionDate    string  `json:"transaction_date"` // DD/MM/YYYY
	Receiver           string  `json:"receiver"`
	SentFrom           string  `json:"sent_from"`
}

// TransactionDateLayout is the wire format of TransactionDate.
const TransactionDateLayout = "02/01/2006"

// UnknownTab is the tab used when the transaction date cannot be parsed.
const UnknownTab = "Unknown"

// HeaderRow is the first row written to every newly created month tab.
var HeaderRow = []interface{}{"Date", "Type", "Amount", "Receiver", "Sent From", "Is Transaction?"}

// MonthTab returns the spreadsheet tab name for the record: the English full
// month name of TransactionDate, or UnknownTab when the date is empty or does
// not parse. The fallback is deliberate behavior, not a swallowed error.
func (r TransactionRecord) MonthTab() string {
	if r.TransactionDate == "" {
		return UnknownTab
	}
	t, err := time.Parse(TransactionDateLayout, r.TransactionDate)
	if err != nil {
		return UnknownTab
	}
	return t.Month().String()
}

// SheetRow maps the record to the fixed 6-column layout of a month tab.
// The type cell is "Credit" only for the exact raw value "credit"; anything
// else, malformed values included, renders as "Debit". That quirk matches the
// sheet's existing data, so keep it.
func (r TransactionRecord) SheetRow() []interface{} {
	txType := "Debit"
	if r.TransactionType == "credit" {
		txType = "Credit"
	}
	flag := "No"
	if r.TransactionMessage {
		flag = "Yes"
	}
	return []interface{}{
		r.TransactionDate,
		txType,
		r.TransactionAmount,
		r.Receiver,
		r.SentFrom,
		flag,
	}
}
