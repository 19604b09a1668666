package cli

import "fmt"

// About prints the static landing/about/contact copy.
func (a *App) About() {
	fmt.Fprintln(a.out, `Nomad Tales: stories from the road.

Travel articles written by nomads, for nomads. Browse without an account;
sign in to write, organize categories and see the dashboard.

Contact: hello@nomadtales.example`)
}
