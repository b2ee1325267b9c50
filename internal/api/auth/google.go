package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"net/url"

	"artmarket-admin/config"
	"artmarket-admin/internal/api/respond"
	"artmarket-admin/internal/infra/logger"
	svc "artmarket-admin/internal/service/users"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const stateCookie = "oauth_state"

// Google holds the OAuth2 client and the ID token verifier.
type Google struct {
	oauth    *oauth2.Config
	verifier *oidc.IDTokenVerifier
	redirect string
	secure   bool
}

// NewGoogle discovers Google's OIDC provider. It returns nil, nil when the
// client is not configured.
func NewGoogle(ctx context.Context, cfg *config.Config) (*Google, error) {
	if !cfg.GoogleEnabled() {
		return nil, nil
	}
	provider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		return nil, err
	}
	return &Google{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleCallbackURL,
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.GoogleClientID}),
		redirect: cfg.GoogleFrontendRedirect,
		secure:   cfg.IsProduction(),
	}, nil
}

type googleIDClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GET /auth/google
func (h *Handler) GoogleStart(c *gin.Context) {
	if h.google == nil {
		respond.Fail(c, http.StatusNotFound, "Google sign-in is not configured")
		return
	}
	state, err := randomState()
	if err != nil {
		respond.Fail(c, http.StatusInternalServerError, "Failed to generate state")
		return
	}

	c.SetCookie(stateCookie, state, 300, "/", "", h.google.secure, true)
	c.Redirect(http.StatusFound, h.google.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline))
}

// GET /auth/google/callback
func (h *Handler) GoogleCallback(c *gin.Context) {
	if h.google == nil {
		respond.Fail(c, http.StatusNotFound, "Google sign-in is not configured")
		return
	}
	state := c.Query("state")
	code := c.Query("code")
	if code == "" || state == "" {
		respond.Fail(c, http.StatusBadRequest, "Missing code or state")
		return
	}
	cookieState, err := c.Cookie(stateCookie)
	if err != nil || cookieState != state {
		respond.Fail(c, http.StatusBadRequest, "Invalid oauth state")
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", h.google.secure, true)

	claims, err := h.google.exchange(c.Request.Context(), code)
	if err != nil {
		logger.FromGin(c).Warn("google sign-in failed", zap.Error(err))
		respond.Fail(c, http.StatusUnauthorized, err.Error())
		return
	}

	res, err := h.svc.GoogleLogin(c.Request.Context(), svc.GoogleProfile{
		Sub:        claims.Sub,
		Email:      claims.Email,
		Name:       claims.Name,
		GivenName:  claims.GivenName,
		FamilyName: claims.FamilyName,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}

	if h.google.redirect == "" {
		respond.OK(c, "Login successful", res)
		return
	}
	c.Redirect(http.StatusFound, h.google.redirect+"?token="+url.QueryEscape(res.Token))
}

func (g *Google) exchange(ctx context.Context, code string) (*googleIDClaims, error) {
	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, errors.New("Failed to exchange code")
	}
	raw, ok := tok.Extra("id_token").(string)
	if !ok || raw == "" {
		return nil, errors.New("Missing id_token")
	}

	idToken, err := g.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, errors.New("Invalid id_token")
	}
	var claims googleIDClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.New("Failed to decode token claims")
	}
	if claims.Email == "" || claims.Sub == "" {
		return nil, errors.New("Token missing required claims")
	}
	if !claims.EmailVerified {
		return nil, errors.New("Google email is not verified")
	}
	return &claims, nil
}
