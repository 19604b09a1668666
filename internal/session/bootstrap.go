package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nomad-tales/nomadtales/internal/api"
	"github.com/nomad-tales/nomadtales/internal/credential"
	"github.com/nomad-tales/nomadtales/internal/logging"
	"github.com/nomad-tales/nomadtales/internal/models"
)

// Verifier is the slice of the API client the bootstrap needs.
type Verifier interface {
	CurrentUser(ctx context.Context) (models.User, error)
}

// Bootstrap reconciles the persisted credential with the session store.
// It runs once, at startup, before any protected screen can be entered.
//
// Outcomes:
//   - no stored credential, or a locally expired one: signed out.
//   - credential rejected by the backend: signed out, stored credential wiped.
//   - backend unreachable: signed out for this run, but the credential is
//     kept so the next start can retry; the condition is logged as a warning
//     rather than being silently folded into "never logged in".
//   - credential verified: signed in as the returned identity.
//
// Bootstrap never returns an error; every failure path resolves to a valid
// session state.
func Bootstrap(ctx context.Context, creds credential.Source, verifier Verifier, store *Store, log logging.Logger) {
	token, ok := creds.Token()
	if !ok {
		store.ClearAuthenticated()
		return
	}

	if tokenExpired(token) {
		store.ClearAuthenticated()
		if err := creds.Clear(); err != nil {
			log.Warn(ctx, "could not remove expired credential", "error", err)
		}
		log.Info(ctx, "stored credential has expired, starting signed out")
		return
	}

	user, err := verifier.CurrentUser(ctx)
	if err != nil {
		store.ClearAuthenticated()
		if errors.Is(err, api.ErrUnauthorized) {
			if cerr := creds.Clear(); cerr != nil {
				log.Warn(ctx, "could not remove rejected credential", "error", cerr)
			}
			log.Info(ctx, "stored credential was rejected, starting signed out")
			return
		}
		log.Warn(ctx, "could not verify stored credential, starting signed out", "error", err)
		return
	}

	store.SetAuthenticated(user)
	log.Info(ctx, "session restored", "username", user.Username)
}

// tokenExpired decodes the token claims without verifying the signature and
// reports whether the exp claim is in the past. Signature verification is
// the backend's job; this is only a cheap local pre-check, the same one the
// browser build did before trusting a stored cookie. A token that cannot be
// decoded at all is treated as expired.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
