// Package cli implements the interactive terminal client for Nomad Tales:
// a read-eval-print loop with screens for browsing and editing articles and
// categories, the dashboard, and the sign-in flows.
//
// Screens never let an error escape: every failure is converted into a
// message shown to the user, and the loop keeps running.
package cli
