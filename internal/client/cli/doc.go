// Package cli provides the interactive GoBarber command-line client.
//
// It wires configuration, logging, the persisted session, the API client and
// an interactive REPL. Every command first navigates through the route guard,
// so signed-out users only reach the public pages and signed-in users land on
// the dashboard.
//
// Key features:
//   - Sign in / sign up / sign out, password recovery and reset
//   - Profile editing and avatar upload
//   - Dashboard with the month's booked-out days and the day's appointments
//   - Notifications that disappear on their own
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See NewApp and runREPL for details.
package cli
