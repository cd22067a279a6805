// Package api is the HTTP client for the GoBarber backend.
//
// # Overview
//
// Client wraps a retryablehttp client with retries switched off: every call is
// attempted exactly once and its error handed back to the caller. A bearer
// credential can be attached with SetToken and detached with ClearToken; the
// session store is the only caller that does so.
//
// Endpoints:
//
//	POST  /sessions                          CreateSession
//	POST  /users                             CreateUser
//	POST  /password/recovery                 RecoverPassword
//	PATCH /password/reset                    ResetPassword
//	PUT   /profile                           UpdateProfile
//	PATCH /users/avatar                      UpdateAvatar
//	GET   /providers/{id}/month-availability MonthAvailability
//	GET   /appointments/schedule             DaySchedule
//
// # Error Handling
//
// Status codes map to sentinel errors that callers match with errors.Is:
// ErrUnauthorized (401), ErrNotFound (404), ErrUnavailable (transport
// failures, 408, 502, 503, 504). Any other non-2xx response yields an *Error
// carrying the status and the API's message.
package api
