package editor

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
)

// NormalizeWhitespace collapses every maximal run of whitespace to a single
// space and trims the ends. Comparisons built on it ignore source
// formatting (indentation, line breaks) while preserving token adjacency
// and order. The function is idempotent.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Preview returns the live preview frame.
func (s *Session) Preview() playwright.FrameLocator {
	return s.page.FrameLocator(previewFrameSel)
}

// VerifyScriptInPreview reads all <script> tag text from the live preview
// frame and asserts the normalized expected string is a substring of the
// normalized concatenation. Script order is not asserted, only containment.
func (s *Session) VerifyScriptInPreview(expected string) {
	s.t.Helper()
	scripts := s.Preview().Locator("script")

	// AllTextContents does not wait on its own; make sure the preview
	// document has rendered at least one script tag first.
	if err := scripts.First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(s.timeout),
	}); err != nil {
		s.logPageState()
		s.t.Fatalf("preview frame never rendered a script tag: %v", err)
	}

	texts, err := scripts.AllTextContents()
	if err != nil {
		s.t.Fatalf("failed to read preview script tags: %v", err)
	}

	actual := NormalizeWhitespace(strings.Join(texts, "\n"))
	want := NormalizeWhitespace(expected)
	if !strings.Contains(actual, want) {
		s.t.Fatalf("preview scripts do not contain expected content\nexpected (normalized): %s\nactual   (normalized): %s", want, actual)
	}
}

// VerifyScriptInTestPage fetches the generated main.js from the currently
// loaded test page and asserts every expected substring is contained,
// whitespace-insensitively. The test page does not share the editor's live
// DOM; the fetch goes through the page's own network stack so it carries
// the page's cookies.
func VerifyScriptInTestPage(t *testing.T, page playwright.Page, expected ...string) {
	t.Helper()
	body, err := fetchGeneratedScript(page)
	if err != nil {
		t.Fatalf("generated main.js not available on test page %s: %v", page.URL(), err)
	}

	actual := NormalizeWhitespace(body)
	for _, exp := range expected {
		want := NormalizeWhitespace(exp)
		if !strings.Contains(actual, want) {
			t.Fatalf("generated main.js does not contain expected content\nexpected (normalized): %s\nactual   (normalized): %s", want, actual)
		}
	}
}

// fetchGeneratedScript locates the <script src="*main.js"> tag on the page
// and fetches its source text. Both the missing tag and a failed fetch are
// reported explicitly; the artifact being absent is a distinct failure, not
// a generic lookup error.
func fetchGeneratedScript(page playwright.Page) (string, error) {
	result, err := page.Evaluate(fetchMainJS)
	if err != nil {
		return "", fmt.Errorf("fetch via page failed: %w", err)
	}
	status, ok := result.(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("unexpected fetch result %T", result)
	}
	if msg, _ := status["error"].(string); msg != "" {
		return "", errors.New(msg)
	}
	body, _ := status["body"].(string)
	return body, nil
}

const fetchMainJS = `async () => {
	const tag = document.querySelector('script[src*="main.js"]');
	if (!tag) {
		return { error: 'no script tag with src matching main.js' };
	}
	try {
		const res = await fetch(tag.src);
		if (!res.ok) {
			return { error: 'fetching ' + tag.src + ' returned status ' + res.status };
		}
		return { body: await res.text() };
	} catch (e) {
		return { error: 'fetching ' + tag.src + ' failed: ' + e };
	}
}`
