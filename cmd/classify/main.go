package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dvloznov/txnsheet/internal/classifier"
	"github.com/dvloznov/txnsheet/internal/config"
	"github.com/dvloznov/txnsheet/internal/logger"
)

// classify runs one message through the classifier and prints the structured
// record, without touching the spreadsheet. Useful for tuning the prompt and
// checking how real bank notifications come out.
func main() {
	cfg, err := config.New()
	if err != nil {
		log := logger.New("")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log := logger.New(cfg.LogLevel)

	message := strings.Join(os.Args[1:], " ")
	if message == "" {
		message = readStdin()
	}
	if message == "" {
		fmt.Fprintln(os.Stderr, "Usage: classify <message text>  (or pipe the message on stdin)")
		os.Exit(1)
	}

	if cfg.GeminiAPIKey == "" {
		log.Fatal().Msg("GEMINI_API_KEY is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	gemini := classifier.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel)

	record, err := gemini.Classify(ctx, message)
	if err != nil {
		log.Fatal().Err(err).Msg("Classification failed")
	}

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode record")
	}
	fmt.Println(string(out))

	if record.TransactionMessage {
		log.Info().Str("tab", record.MonthTab()).Msg("Record would be appended to this tab")
	}
}

func readStdin() string {
	info, err := os.Stdin.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice != 0 {
		return ""
	}
	var b strings.Builder
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		b.WriteString(scanner.Text())
		b.WriteString(" ")
	}
	return strings.TrimSpace(b.String())
}
