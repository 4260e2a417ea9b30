// ABOUTME: Base URL resolution for the request pipeline
// ABOUTME: Upgrades http to https in secure contexts, exempting loopback hosts

package api

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ResolveBaseURL parses and normalizes the configured backend base URL.
// When secureContext is true (the caller is itself served over HTTPS), an
// http scheme is upgraded to https so requests do not trip mixed-content
// blocking. Loopback hosts are exempt from the upgrade: a local backend over
// plain HTTP keeps working during development.
func ResolveBaseURL(raw string, secureContext bool) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("base URL must use http or https scheme, got %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("base URL %q has no host", raw)
	}

	if secureContext && u.Scheme == "http" && !isLoopbackHost(u.Hostname()) {
		u.Scheme = "https"
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// isLoopbackHost reports whether host refers to the local machine:
// "localhost" (and subdomains), 127.0.0.0/8, or ::1.
func isLoopbackHost(host string) bool {
	host = strings.ToLower(host)
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback()
	}
	return false
}
