// ABOUTME: Package doc for the typed bot and conversation client
// ABOUTME: Thin wrappers over the authenticated request pipeline

// Package botapi provides typed access to the backend's bot and conversation
// resources. Every call goes through the authenticated request pipeline in
// internal/api; this package only contributes the resource shapes and paths.
package botapi
