// Package api is the authenticated request pipeline for the botdeck backend.
//
// A Client performs one HTTP call per request: it attaches the current access
// token as a bearer credential (read from a TokenSource snapshot at dispatch
// time), sets JSON content headers, and normalizes the result.
//
// # Result normalization
//
// Statuses in [200, 300) decode the JSON body into the caller's value; 204
// leaves the value untouched. Any other status produces a *RequestError
// carrying the backend's "detail" message when the error body parses, or a
// synthesized "HTTP <status>" message when it does not. Transport failures
// (DNS, connection refused, timeout) produce a *RequestError with StatusCode
// zero wrapping the transport error.
//
// The pipeline never retries and never mutates the credential store; retry
// and refresh policy belong to the session controller.
//
// # Base URL resolution
//
// The base URL is resolved once via ResolveBaseURL. When the caller runs in a
// secure (HTTPS) context, plain-http base URLs are upgraded to https to avoid
// mixed-content failures, except for loopback hosts so local development
// keeps working.
package api
