package cli

import (
	"errors"
	"log"

	"github.com/nomad-tales/nomadtales/internal/api"
)

// printAPIError converts a client error into the message shown for it.
// Validation problems carry the backend's message inline; everything else
// gets a short generic line.
func printAPIError(action string, err error) {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		log.Printf("%s failed: your session is no longer valid, please sign in again", action)
	case errors.Is(err, api.ErrNotFound):
		log.Printf("%s failed: not found (use 'articles' to go back to the list)", action)
	case errors.Is(err, api.ErrValidation):
		log.Printf("%s failed: %v", action, err)
	case errors.Is(err, api.ErrUnavailable):
		log.Printf("%s failed: backend unreachable, please try again", action)
	default:
		log.Printf("%s failed: %v", action, err)
	}
}
