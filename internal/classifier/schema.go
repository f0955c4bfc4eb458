package classifier

import (
	"google.golang.org/genai"
)

// systemInstruction tells the model what counts as a transaction message.
// Messages about future or pending payments are explicitly not transactions.
const systemInstruction = "You are an expert financial message parser who can accurately detect " +
	"whether a message represents a transaction message. A transaction message is one which " +
	"represents a transaction that has been completed. If it denotes a future transaction then " +
	"its not a transaction message."

// recordSchema is the response schema sent with every request. It mirrors
// domain.TransactionRecord field for field; keep the two in sync.
func recordSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"transaction_message": {
				Type:        genai.TypeBoolean,
				Description: "Whether the current message denotes a transaction that has been completed",
			},
			"transaction_type": {
				Type:        genai.TypeString,
				Enum:        []string{"credit", "debit"},
				Description: "If message is a transaction message denotes whether its a debit transaction or a credit transaction",
			},
			"transaction_amount": {
				Type:        genai.TypeNumber,
				Description: "If a transaction message, then represents the amount of transaction",
			},
			"transaction_date": {
				Type:        genai.TypeString,
				Description: "Represents the date of the transaction in a DD/MM/YYYY format",
			},
			"receiver": {
				Type:        genai.TypeString,
				Description: "The counterparty receiving the funds, empty if not present in the message",
			},
			"sent_from": {
				Type:        genai.TypeString,
				Description: "The account or source the funds were sent from, empty if not present",
			},
		},
		Required: []string{"transaction_message"},
	}
}
