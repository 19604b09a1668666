package cli

import (
	"context"
	"fmt"
)

// Profile shows the identity behind the current session, fetched fresh from
// the backend rather than echoed from the session store.
func (a *App) Profile(ctx context.Context) error {
	user, err := a.backend.CurrentUser(ctx)
	if err != nil {
		printAPIError("profile", err)
		return err
	}

	fmt.Fprintf(a.out, "id:       %d\n", user.ID)
	fmt.Fprintf(a.out, "username: %s\n", user.Username)
	fmt.Fprintf(a.out, "email:    %s\n", user.Email)
	if !user.CreatedAt.IsZero() {
		fmt.Fprintf(a.out, "member since: %s\n", user.CreatedAt.Format("2006-01-02"))
	}
	return nil
}
