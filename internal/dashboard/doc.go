// ABOUTME: Package doc for the server-rendered dashboard
// ABOUTME: Auth screens plus bot and conversation management pages

// Package dashboard serves the botdeck web UI. Templates are embedded in the
// binary and rendered server-side; no client-side framework is involved.
//
// The route guard wraps every page: unauthenticated visitors are redirected
// to /login with a return_to parameter, authenticated visitors are bounced
// off the auth screens, and requests arriving before the startup session
// check resolves get a neutral holding page instead of a redirect.
package dashboard
