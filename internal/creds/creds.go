// Package creds turns a persisted authorized-user credential blob into a
// refreshed OAuth2 token source for the Sheets API.
package creds

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	sheets "google.golang.org/api/sheets/v4"
)

// authorizedUser is the on-disk shape produced by Google's authorized-user
// flow: the long-lived refresh token plus client identity, optionally with
// the last access token and its expiry.
type authorizedUser struct {
	ClientID     string    `json:"client_id"`
	ClientSecret string    `json:"client_secret"`
	RefreshToken string    `json:"refresh_token"`
	AccessToken  string    `json:"token"`
	Expiry       time.Time `json:"expiry"`
}

// TokenSource parses blob and returns a token source that refreshes the
// access token once when it has expired and a refresh token is present.
// Parse and refresh failures surface as-is; there is no retry.
func TokenSource(ctx context.Context, blob string) (oauth2.TokenSource, error) {
	var user authorizedUser
	if err := json.Unmarshal([]byte(blob), &user); err != nil {
		return nil, fmt.Errorf("creds: parse credential blob: %w", err)
	}
	if user.ClientID == "" || user.ClientSecret == "" {
		return nil, fmt.Errorf("creds: credential blob missing client identity")
	}

	cfg := &oauth2.Config{
		ClientID:     user.ClientID,
		ClientSecret: user.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{sheets.SpreadsheetsScope},
	}
	seed := &oauth2.Token{
		AccessToken:  user.AccessToken,
		RefreshToken: user.RefreshToken,
		Expiry:       user.Expiry,
	}

	return cfg.TokenSource(ctx, seed), nil
}

// AccessToken returns one valid token from blob, performing a refresh
// exchange when the persisted access token has expired.
func AccessToken(ctx context.Context, blob string) (*oauth2.Token, error) {
	ts, err := TokenSource(ctx, blob)
	if err != nil {
		return nil, err
	}
	tok, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("creds: refresh token exchange: %w", err)
	}
	return tok, nil
}
