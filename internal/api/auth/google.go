package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"net/url"
	"strings"

	userapi "media-access/internal/api/users"
	"media-access/internal/domain/access"
	"media-access/internal/domain/users"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleIssuer   = "https://accounts.google.com"
	googleCertsURL = "https://www.googleapis.com/oauth2/v3/certs"
	stateCookie    = "oauth_state"
)

type GoogleConfig struct {
	ClientID         string
	ClientSecret     string
	RedirectURL      string
	FrontendRedirect string
}

func (g GoogleConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != "" && g.RedirectURL != ""
}

// GoogleHandler signs users in with Google and issues the same token as Login.
type GoogleHandler struct {
	oauth            *oauth2.Config
	verifier         *oidc.IDTokenVerifier
	users            userapi.Store
	tokens           *Handler
	frontendRedirect string
	secureCookie     bool
}

// NewGoogleHandler verifies ID tokens against Google's published keys. The
// key set is fetched lazily on the first callback.
func NewGoogleHandler(ctx context.Context, cfg GoogleConfig, store userapi.Store, tokens *Handler) *GoogleHandler {
	keySet := oidc.NewRemoteKeySet(ctx, googleCertsURL)
	verifier := oidc.NewVerifier(googleIssuer, keySet, &oidc.Config{ClientID: cfg.ClientID})

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		Endpoint:     google.Endpoint,
	}
	return newGoogleHandler(oauthCfg, verifier, store, tokens, cfg.FrontendRedirect)
}

func newGoogleHandler(oauthCfg *oauth2.Config, verifier *oidc.IDTokenVerifier, store userapi.Store, tokens *Handler, frontendRedirect string) *GoogleHandler {
	return &GoogleHandler{
		oauth:            oauthCfg,
		verifier:         verifier,
		users:            store,
		tokens:           tokens,
		frontendRedirect: frontendRedirect,
		secureCookie:     strings.HasPrefix(oauthCfg.RedirectURL, "https://"),
	}
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GET /auth/google
func (g *GoogleHandler) Start(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate state"})
		return
	}

	// 5 minutes, HttpOnly
	c.SetCookie(stateCookie, state, 300, "/", "", g.secureCookie, true)

	c.Redirect(http.StatusFound, g.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline))
}

// GET /auth/google/callback
func (g *GoogleHandler) Callback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code/state"})
		return
	}

	cookieState, err := c.Cookie(stateCookie)
	if err != nil || cookieState != state {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state"})
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", g.secureCookie, true)

	ctx := c.Request.Context()

	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "failed to exchange code"})
		return
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing id_token"})
		return
	}

	claims, err := g.verify(ctx, rawIDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	user, err := g.findOrCreateUser(ctx, claims)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	tokenString, err := g.tokens.IssueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create token"})
		return
	}

	if g.frontendRedirect == "" {
		c.JSON(http.StatusOK, gin.H{"token": tokenString})
		return
	}
	c.Redirect(http.StatusFound, g.frontendRedirect+"?token="+url.QueryEscape(tokenString))
}

type googleIDClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
}

func (g *GoogleHandler) verify(ctx context.Context, rawIDToken string) (googleIDClaims, error) {
	idToken, err := g.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return googleIDClaims{}, errors.New("invalid id_token")
	}

	var claims googleIDClaims
	if err := idToken.Claims(&claims); err != nil {
		return googleIDClaims{}, errors.New("failed to decode token claims")
	}
	if claims.Email == "" || claims.Sub == "" {
		return googleIDClaims{}, errors.New("token missing required claims")
	}
	// accounts are matched by email, so it must be one Google has verified
	if !claims.EmailVerified {
		return googleIDClaims{}, errors.New("google email not verified")
	}
	claims.Email = strings.ToLower(claims.Email)
	return claims, nil
}

// findOrCreateUser looks the user up by Google subject, then by email
// (linking the subject), and otherwise creates a curator.
func (g *GoogleHandler) findOrCreateUser(ctx context.Context, gc googleIDClaims) (users.User, error) {
	user, err := g.users.FindByGoogleSub(ctx, gc.Sub)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, userapi.ErrNotFound) {
		return users.User{}, err
	}

	user, err = g.users.FindByEmail(ctx, gc.Email)
	if err == nil {
		if user.GoogleSub == nil {
			if err := g.users.LinkGoogleSub(ctx, user.ID, gc.Sub); err != nil {
				return users.User{}, err
			}
			sub := gc.Sub
			user.GoogleSub = &sub
		}
		return user, nil
	}
	if !errors.Is(err, userapi.ErrNotFound) {
		return users.User{}, err
	}

	sub := gc.Sub
	user = users.User{
		Name:      firstNonEmpty(gc.GivenName, gc.Name),
		Email:     gc.Email,
		GoogleSub: &sub,
		Role:      access.RoleCurator,
	}
	if err := g.users.Create(ctx, &user); err != nil {
		return users.User{}, err
	}
	return user, nil
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}
