package cli

import (
	"context"
	"errors"
	"log"

	"github.com/nomad-tales/nomadtales/internal/api"
)

// Login prompts for credentials and authenticates against the backend.
// On success the session store is updated and the issued credential is
// persisted by the client. On failure the session is left untouched and an
// inline message is shown; no navigation happens.
func (a *App) Login(ctx context.Context) error {
	identifier, err := getSimpleText(a.reader, "Email or username", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer wipeBytes(password)

	user, err := a.backend.Login(ctx, identifier, string(password))
	if err != nil {
		switch {
		case errors.Is(err, api.ErrUnauthorized), errors.Is(err, api.ErrValidation):
			log.Printf("Sign in failed: invalid identifier or password")
		case errors.Is(err, api.ErrUnavailable):
			log.Printf("Sign in failed: backend unreachable, please try again")
		default:
			log.Printf("Sign in failed: %v", err)
		}
		return err
	}

	a.session.SetAuthenticated(user)
	log.Printf("Signed in as %s", user.Username)
	return nil
}

// Register prompts for the new account fields, applies the basic format
// checks, and creates the account. A successful registration signs the
// user in, same as the web form did.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if !isEmailValid(email) {
		log.Printf("That does not look like an email address")
		return errors.New("invalid email format")
	}

	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if username == "" {
		log.Printf("Username is required")
		return errors.New("username required")
	}

	password, err := getPassword(a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer wipeBytes(password)
	confirm, err := getPassword(a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer wipeBytes(confirm)
	if string(password) != string(confirm) {
		log.Printf("Passwords do not match")
		return errors.New("passwords do not match")
	}

	user, err := a.backend.Register(ctx, email, username, string(password))
	if err != nil {
		if errors.Is(err, api.ErrValidation) {
			log.Printf("Registration failed: %v", err)
		} else {
			printAPIError("registration", err)
		}
		return err
	}

	a.session.SetAuthenticated(user)
	log.Printf("Welcome to Nomad Tales, %s!", user.Username)
	return nil
}

// Logout clears the stored credential and the session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.creds.Clear(); err != nil {
		log.Printf("error clearing credential: %v", err)
		return err
	}
	a.session.ClearAuthenticated()
	log.Printf("Signed out")
	return nil
}
