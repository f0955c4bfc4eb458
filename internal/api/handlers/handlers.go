package handlers

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dvloznov/txnsheet/internal/api/middleware"
	"github.com/dvloznov/txnsheet/internal/classifier"
	"github.com/dvloznov/txnsheet/internal/domain"
)

// TransactionWriter is the spreadsheet side effect for one classified
// transaction. It returns the month tab the row landed in.
type TransactionWriter interface {
	Write(ctx context.Context, record domain.TransactionRecord) (string, error)
}

// Options carries the request-independent configuration of both handlers.
// An empty SharedSecret disables the authorization check.
type Options struct {
	SharedSecret  string
	DenialMessage string
	WriteEnabled  bool
}

// MessagesHandler classifies inbound notification messages and, when writes
// are enabled, appends completed transactions to the spreadsheet.
type MessagesHandler struct {
	classifier classifier.Classifier
	writer     TransactionWriter
	opts       Options
	log        zerolog.Logger
}

// NewMessagesHandler creates the classify(+write) handler. writer may be nil
// when opts.WriteEnabled is false.
func NewMessagesHandler(c classifier.Classifier, w TransactionWriter, opts Options, log zerolog.Logger) *MessagesHandler {
	return &MessagesHandler{
		classifier: c,
		writer:     w,
		opts:       opts,
		log:        log,
	}
}

type messageRequest struct {
	Message string `json:"message"`
	Secret  string `json:"secret"`
}

// ProcessMessage handles POST /v1/messages.
func (h *MessagesHandler) ProcessMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "no message provided"})
		return
	}

	if !authorized(h.opts, req.Secret) {
		h.log.Warn().Msg("Shared secret mismatch")
		middleware.WriteJSON(w, http.StatusForbidden, map[string]string{"message": denialBody(h.opts)})
		return
	}

	if req.Message == "" {
		middleware.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "no message provided"})
		return
	}

	record, err := h.classifier.Classify(ctx, req.Message)
	if err != nil {
		h.fail(w, err, "Classification failed")
		return
	}

	if !record.TransactionMessage {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "not a transaction message"})
		return
	}

	if !h.opts.WriteEnabled {
		// Classify-only deployment shape: return the record to the caller,
		// which forwards it to the append endpoint.
		middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"message": "transaction message classified",
			"record":  record,
		})
		return
	}

	tab, err := h.writer.Write(ctx, record)
	if err != nil {
		h.fail(w, err, "Spreadsheet write failed")
		return
	}

	h.log.Info().
		Str("tab", tab).
		Float64("amount", record.TransactionAmount).
		Str("type", record.TransactionType).
		Msg("Transaction appended")

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Transaction added to sheet",
		"record":  record,
	})
}

// fail collapses classifier and writer failures into a single 500 response.
// The error kind is part of the detail, so "classified but failed to write"
// is distinguishable from "classification failed" in the body and the logs.
func (h *MessagesHandler) fail(w http.ResponseWriter, err error, msg string) {
	kind, _ := domain.KindOf(err)
	h.log.Error().Err(err).Str("kind", string(kind)).Msg(msg)
	middleware.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

// RecordsHandler accepts a pre-classified TransactionRecord and performs only
// the spreadsheet append. This is the write half of the split deployment
// shape.
type RecordsHandler struct {
	writer TransactionWriter
	opts   Options
	log    zerolog.Logger
}

// NewRecordsHandler creates the append-only handler.
func NewRecordsHandler(w TransactionWriter, opts Options, log zerolog.Logger) *RecordsHandler {
	return &RecordsHandler{writer: w, opts: opts, log: log}
}

type recordRequest struct {
	Secret string `json:"secret"`
	domain.TransactionRecord
}

// AppendRecord handles POST /v1/records.
func (h *RecordsHandler) AppendRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "no body provided"})
		return
	}

	if !authorized(h.opts, req.Secret) {
		h.log.Warn().Msg("Shared secret mismatch")
		middleware.WriteJSON(w, http.StatusForbidden, map[string]string{"message": denialBody(h.opts)})
		return
	}

	if !req.TransactionMessage {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "not a transaction message"})
		return
	}

	if h.writer == nil {
		middleware.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "spreadsheet writes are disabled"})
		return
	}

	tab, err := h.writer.Write(ctx, req.TransactionRecord)
	if err != nil {
		kind, _ := domain.KindOf(err)
		h.log.Error().Err(err).Str("kind", string(kind)).Msg("Spreadsheet write failed")
		middleware.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	h.log.Info().Str("tab", tab).Msg("Transaction appended")
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "Transaction added to sheet"})
}

// authorized compares the supplied secret against the configured one in
// constant time. No configured secret means every request is authorized.
func authorized(opts Options, supplied string) bool {
	if opts.SharedSecret == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(opts.SharedSecret), []byte(supplied)) == 1
}

func denialBody(opts Options) string {
	msg := "access denied"
	if opts.DenialMessage != "" {
		msg += ": " + opts.DenialMessage
	}
	return msg
}
