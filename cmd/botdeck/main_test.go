// ABOUTME: Tests for CLI wiring helpers
// ABOUTME: Covers secure-context derivation from the loaded config

package main

import (
	"testing"

	"github.com/botdeck/botdeck/internal/config"
)

func TestSecureContext(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want bool
	}{
		{
			name: "default is secure",
			cfg:  config.Config{},
			want: true,
		},
		{
			name: "insecure flag opts out",
			cfg:  config.Config{API: config.APIConfig{Insecure: true}},
			want: false,
		},
		{
			name: "dashboard TLS overrides the insecure flag",
			cfg: config.Config{
				API:       config.APIConfig{Insecure: true},
				Dashboard: config.DashboardConfig{CertFile: "/etc/botdeck/tls.crt", KeyFile: "/etc/botdeck/tls.key"},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := secureContext(&tt.cfg); got != tt.want {
				t.Errorf("secureContext() = %v, want %v", got, tt.want)
			}
		})
	}
}
