// ABOUTME: Tests for the colorized slog handler
// ABOUTME: Covers level gating and group-qualified attribute keys

package main

import (
	"context"
	"log/slog"
	"testing"
)

func TestColorHandlerEnabled(t *testing.T) {
	h := &colorHandler{level: slog.LevelWarn}

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be gated at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should pass at warn level")
	}
}

func TestColorHandlerGroupsQualifyKeys(t *testing.T) {
	h := &colorHandler{level: slog.LevelInfo}

	withComponent := h.WithAttrs([]slog.Attr{slog.String("component", "api")}).(*colorHandler)
	grouped := withComponent.WithGroup("db").WithAttrs([]slog.Attr{slog.String("path", "/tmp/x")}).(*colorHandler)

	// Attrs added before the group keep their bare key
	if got := grouped.attrs[0].Key; got != "component" {
		t.Errorf("pre-group attr key = %q, want %q", got, "component")
	}
	// Attrs added after the group carry it
	if got := grouped.attrs[1].Key; got != "db.path" {
		t.Errorf("grouped attr key = %q, want %q", got, "db.path")
	}

	// Record attrs are qualified at handle time
	if got := grouped.qualify("query"); got != "db.query" {
		t.Errorf("qualify(query) = %q, want %q", got, "db.query")
	}

	nested := grouped.WithGroup("tx").(*colorHandler)
	if got := nested.qualify("id"); got != "db.tx.id" {
		t.Errorf("nested qualify(id) = %q, want %q", got, "db.tx.id")
	}
}
