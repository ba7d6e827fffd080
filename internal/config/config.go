// Package config binds the environment-provided settings the suite needs to
// reach a live pwappy dashboard: the dashboard URL and the three session
// cookies that authenticate the browsing context.
package config

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// Session cookie names the dashboard expects. These are part of the
// dashboard's contract and must match exactly.
const (
	CookieAuthToken   = "pwappy_token"
	CookieIdentityKey = "pwappy_identity_key"
	CookieLoginFlag   = "pwappy_logined"
)

// Environment variable names.
const (
	EnvDashboardURL = "PWAPPY_DASHBOARD_URL"
	EnvAuthToken    = "PWAPPY_AUTH_TOKEN"
	EnvIdentityKey  = "PWAPPY_IDENTITY_KEY"
	EnvLoginFlag    = "PWAPPY_LOGIN_FLAG"
	EnvHeadless     = "HEADLESS"
)

// Config holds everything needed to drive a live dashboard and editor.
type Config struct {
	DashboardURL string
	AuthToken    string
	IdentityKey  string
	LoginFlag    string
	Headless     bool
}

// FromEnv reads the PWAPPY_* environment. Set HEADLESS=false to watch the
// browser while debugging. The login flag cookie defaults to "true".
func FromEnv() Config {
	loginFlag := os.Getenv(EnvLoginFlag)
	if loginFlag == "" {
		loginFlag = "true"
	}
	return Config{
		DashboardURL: strings.TrimRight(os.Getenv(EnvDashboardURL), "/"),
		AuthToken:    os.Getenv(EnvAuthToken),
		IdentityKey:  os.Getenv(EnvIdentityKey),
		LoginFlag:    loginFlag,
		Headless:     os.Getenv(EnvHeadless) != "false",
	}
}

// Validate reports every missing required variable by name so a skip message
// tells the operator exactly what to set.
func (c Config) Validate() error {
	var missing []string
	if c.DashboardURL == "" {
		missing = append(missing, EnvDashboardURL)
	}
	if c.AuthToken == "" {
		missing = append(missing, EnvAuthToken)
	}
	if c.IdentityKey == "" {
		missing = append(missing, EnvIdentityKey)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}
	if _, err := url.Parse(c.DashboardURL); err != nil {
		return fmt.Errorf("invalid %s: %w", EnvDashboardURL, err)
	}
	return nil
}

// CookieDomain returns the hostname cookies should be scoped to.
func (c Config) CookieDomain() (string, error) {
	u, err := url.Parse(c.DashboardURL)
	if err != nil {
		return "", fmt.Errorf("invalid dashboard URL %q: %w", c.DashboardURL, err)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("dashboard URL %q has no host", c.DashboardURL)
	}
	return u.Hostname(), nil
}

// Cookies renders the three session cookies for a Playwright browser
// context. They must be installed before the first navigation.
func (c Config) Cookies(domain string) []playwright.OptionalCookie {
	cookie := func(name, value string) playwright.OptionalCookie {
		return playwright.OptionalCookie{
			Name:     name,
			Value:    value,
			Domain:   playwright.String(domain),
			Path:     playwright.String("/"),
			HttpOnly: playwright.Bool(false),
			Secure:   playwright.Bool(false),
			SameSite: playwright.SameSiteAttributeLax,
		}
	}
	return []playwright.OptionalCookie{
		cookie(CookieAuthToken, c.AuthToken),
		cookie(CookieIdentityKey, c.IdentityKey),
		cookie(CookieLoginFlag, c.LoginFlag),
	}
}

// HTTPCookies renders the same session cookies for a plain HTTP client,
// used by the dashboard API client outside the browser.
func (c Config) HTTPCookies() []*http.Cookie {
	return []*http.Cookie{
		{Name: CookieAuthToken, Value: c.AuthToken, Path: "/"},
		{Name: CookieIdentityKey, Value: c.IdentityKey, Path: "/"},
		{Name: CookieLoginFlag, Value: c.LoginFlag, Path: "/"},
	}
}
