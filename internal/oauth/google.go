package oauth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// Identity is the subset of a verified Google ID token the app cares about.
type Identity struct {
	Sub    string // Google's stable unique user id
	Email  string
	Name   string
	Avatar string
}

// Google drives the OAuth authorization-code flow against Google and
// verifies the resulting ID token.
type Google struct {
	cfg *oauth2.Config
}

// NewGoogle builds the flow config. baseURL is the externally visible
// server URL; the callback path is fixed.
func NewGoogle(clientID, clientSecret, baseURL string) *Google {
	return &Google{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  strings.TrimSuffix(baseURL, "/") + "/auth/google/callback",
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthURL returns the consent page URL carrying the CSRF state.
func (g *Google) AuthURL(state string) string {
	return g.cfg.AuthCodeURL(state)
}

// Exchange trades the callback code for tokens and validates the ID token
// against our client id. No access token is retained; the ID token's
// verified claims are all the app needs.
func (g *Google) Exchange(ctx context.Context, code string) (*Identity, error) {
	tok, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	rawID, ok := tok.Extra("id_token").(string)
	if !ok || rawID == "" {
		return nil, fmt.Errorf("token response missing id_token")
	}

	payload, err := idtoken.Validate(ctx, rawID, g.cfg.ClientID)
	if err != nil {
		return nil, fmt.Errorf("validate id token: %w", err)
	}

	id := &Identity{
		Sub:    payload.Subject,
		Email:  strings.ToLower(claimString(payload.Claims, "email")),
		Name:   claimString(payload.Claims, "name"),
		Avatar: claimString(payload.Claims, "picture"),
	}
	if id.Sub == "" || id.Email == "" {
		return nil, fmt.Errorf("id token missing subject or email")
	}
	return id, nil
}

func claimString(claims map[string]any, key string) string {
	s, _ := claims[key].(string)
	return s
}

// NewState returns a random value binding the consent redirect to the
// callback request.
func NewState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return hex.EncodeToString(b), nil
}
