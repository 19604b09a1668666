package cli

import (
	"context"
	"fmt"
)

// requireAuth gates a protected command on the session store. An
// authenticated caller falls through to cmd unchanged; everyone else is
// sent to the login screen instead, the terminal equivalent of redirecting
// a protected route to the login page. The guard reads the store and
// nothing else.
func (a *App) requireAuth(cmd func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		if !a.session.Current().IsAuthenticated {
			fmt.Fprintln(a.out, "You need to sign in first.")
			return a.Login(ctx)
		}
		return cmd(ctx)
	}
}
