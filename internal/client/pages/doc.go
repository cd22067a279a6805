// Package pages is the form-submission boundary of the client. Each page
// validates its input, talks to the session store or the API, turns remote
// failures into error toasts and says where to navigate next.
//
// Pages never return remote errors to their caller: field errors come back in
// the Outcome, everything else is reported through the notifier.
package pages
