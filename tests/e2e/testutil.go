// Package e2e drives the live pwappy editor end to end. The suite needs a
// configured environment (see internal/config); every test skips when it is
// absent, so the package is safe to run anywhere.
//
// Each test creates its own application and deletes it on cleanup whether
// the body passed or failed. Tests may run concurrently: applications,
// browser contexts, and editor sessions are all per-test.
package e2e

import (
	"context"
	crand "crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	"github.com/pwappy-com/pwappy-web-tests-sub001/internal/config"
	"github.com/pwappy-com/pwappy-web-tests-sub001/internal/dashboard"
	"github.com/pwappy-com/pwappy-web-tests-sub001/internal/editor"
)

const appFixtureTimeout = time.Minute

var (
	suiteMu sync.Mutex
	suite   *suiteFixture
)

// suiteFixture is shared across tests: one Playwright runtime, one browser,
// one dashboard client. Per-test state lives in EditorTest.
type suiteFixture struct {
	cfg          config.Config
	cookieDomain string
	pw           *playwright.Playwright
	browser      playwright.Browser
	dash         *dashboard.Client
}

func TestMain(m *testing.M) {
	code := m.Run()
	cleanupSuite()
	os.Exit(code)
}

func cleanupSuite() {
	suiteMu.Lock()
	defer suiteMu.Unlock()
	if suite == nil {
		return
	}
	if suite.browser != nil {
		_ = suite.browser.Close()
	}
	if suite.pw != nil {
		_ = suite.pw.Stop()
	}
	suite = nil
}

func setupSuite(t *testing.T) *suiteFixture {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	suiteMu.Lock()
	defer suiteMu.Unlock()
	if suite != nil {
		return suite
	}

	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		t.Skipf("pwappy environment not configured: %v", err)
	}
	domain, err := cfg.CookieDomain()
	if err != nil {
		t.Fatalf("failed to derive cookie domain: %v", err)
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Skip("Playwright not available:", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		t.Skip("Could not launch browser:", err)
	}

	suite = &suiteFixture{
		cfg:          cfg,
		cookieDomain: domain,
		pw:           pw,
		browser:      browser,
		dash:         dashboard.New(cfg),
	}
	return suite
}

// EditorTest is the per-test environment: one application, one browser
// context with the session cookies installed, and a helper session bound to
// the opened editor page.
type EditorTest struct {
	AppName string
	AppKey  string
	Context playwright.BrowserContext
	Page    playwright.Page
	Session *editor.Session

	fixture *suiteFixture
}

// setupEditorTest creates an application, opens the editor on it, and
// registers unconditional teardown. timeoutMS sets the per-wait budget;
// scenarios with long interaction chains pass a larger one.
func setupEditorTest(t *testing.T, timeoutMS float64) *EditorTest {
	t.Helper()
	f := setupSuite(t)

	appName := generateAppName("e2e")
	appKey := uuid.NewString()

	ctx, cancel := context.WithTimeout(context.Background(), appFixtureTimeout)
	defer cancel()
	if err := f.dash.CreateApp(ctx, appName, appKey); err != nil {
		t.Fatalf("failed to create application %s: %v", appName, err)
	}
	// Deletion always runs, whatever the test body did.
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), appFixtureTimeout)
		defer cancel()
		if err := f.dash.DeleteApp(ctx, appKey); err != nil {
			t.Errorf("failed to delete application %s: %v", appName, err)
		}
	})

	browserCtx, err := f.browser.NewContext()
	if err != nil {
		t.Fatalf("could not create browser context: %v", err)
	}
	t.Cleanup(func() { _ = browserCtx.Close() })
	browserCtx.SetDefaultTimeout(timeoutMS)
	browserCtx.SetDefaultNavigationTimeout(timeoutMS)

	if err := browserCtx.AddCookies(f.cfg.Cookies(f.cookieDomain)); err != nil {
		t.Fatalf("failed to set session cookies: %v", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		t.Fatalf("could not create page: %v", err)
	}

	session := editor.NewSessionWithTimeout(t, page, timeoutMS)
	session.Open(f.dash.EditorURL(appKey))

	return &EditorTest{
		AppName: appName,
		AppKey:  appKey,
		Context: browserCtx,
		Page:    page,
		Session: session,
		fixture: f,
	}
}

// NewTestPage opens the deployed test page for this application in the same
// browser context. The test page does not share the editor's live DOM; it
// serves the actual shipped output.
func (et *EditorTest) NewTestPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := et.Context.NewPage()
	if err != nil {
		t.Fatalf("could not create test page: %v", err)
	}
	t.Cleanup(func() { _ = page.Close() })

	url := et.fixture.dash.TestPageURL(et.AppKey)
	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
	}); err != nil {
		t.Fatalf("failed to open test page %s: %v", url, err)
	}
	return page
}

// generateAppName returns a globally unique application name.
func generateAppName(prefix string) string {
	suffix := make([]byte, 8)
	if _, err := crand.Read(suffix); err != nil {
		panic(fmt.Sprintf("failed to generate unique app name suffix: %v", err))
	}
	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(suffix))
}
