// Package jobpage fetches job listing pages and extracts the job
// description text with a cascade of strategies, from precise CSS
// selectors down to a whole-page fallback.
package jobpage

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/hireline/assessrec/internal/domain"
	"github.com/hireline/assessrec/internal/metrics"
)

const (
	defaultTimeout = 10 * time.Second

	// Job boards often serve a degraded page to unknown clients,
	// so requests identify as a regular desktop browser.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// fallbackTextLimit caps the last-resort whole-page extraction.
	fallbackTextLimit = 2000
)

// descriptionSelectors are the class names and IDs job boards commonly
// use for the description block, tried in order.
var descriptionSelectors = []string{
	"div.description", "div.job-description", "#job-description",
	".job-details", ".description", `[data-test="job-description"]`,
	"section.description", "div.details", ".details-pane",
	".job-desc", ".show-more-less-html",
}

// headingKeywords mark headings whose following siblings likely hold
// the job description.
var headingKeywords = []string{
	"responsibilities", "requirements", "qualifications",
	"about the job", "job summary", "what you'll do", "what we're looking for",
}

// Extractor fetches job pages over HTTP and pulls out the description text.
type Extractor struct {
	client *http.Client
	logger *zap.Logger
}

// NewExtractor creates a job page extractor. A zero timeout uses the default.
func NewExtractor(timeout time.Duration, logger *zap.Logger) *Extractor {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Extractor{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Extract downloads the page at url and returns the job description text.
// All failures wrap domain.ErrExtractionFailed.
func (e *Extractor) Extract(ctx context.Context, url string) (string, error) {
	doc, err := e.fetch(ctx, url)
	if err != nil {
		metrics.ScrapeRequestsTotal.WithLabelValues("fetch", "error").Inc()
		return "", fmt.Errorf("fetch %s: %v: %w", url, err, domain.ErrExtractionFailed)
	}

	strategies := []struct {
		name string
		fn   func(*goquery.Document) string
	}{
		{"selector", extractBySelector},
		{"heading", extractByHeading},
		{"main_content", extractMainContent},
		{"whole_page", extractWholePage},
	}

	for _, s := range strategies {
		if text := s.fn(doc); text != "" {
			metrics.ScrapeRequestsTotal.WithLabelValues(s.name, "success").Inc()
			e.logger.Debug("extracted job description",
				zap.String("url", url),
				zap.String("strategy", s.name),
				zap.Int("length", len(text)))
			return text, nil
		}
	}

	metrics.ScrapeRequestsTotal.WithLabelValues("whole_page", "error").Inc()
	return "", fmt.Errorf("no extractable content at %s: %w", url, domain.ErrExtractionFailed)
}

func (e *Extractor) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// extractBySelector tries the known description selectors in order.
func extractBySelector(doc *goquery.Document) string {
	for _, selector := range descriptionSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if text := normalizeText(sel.Text()); text != "" {
			return text
		}
	}
	return ""
}

// extractByHeading looks for headings mentioning job keywords and
// collects the sibling elements up to the next heading.
func extractByHeading(doc *goquery.Document) string {
	var result string

	doc.Find("h1, h2, h3, h4, strong").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		headingText := strings.ToLower(heading.Text())
		if !containsAny(headingText, headingKeywords) {
			return true
		}

		var parts []string
		for cur := heading.Next(); cur.Length() > 0; cur = cur.Next() {
			if isHeadingNode(cur) {
				break
			}
			if text := normalizeText(cur.Text()); text != "" {
				parts = append(parts, text)
			}
		}

		if len(parts) > 0 {
			result = strings.Join(parts, "\n")
			return false
		}
		return true
	})

	return result
}

// extractMainContent falls back to the page's main content container.
func extractMainContent(doc *goquery.Document) string {
	for _, selector := range []string{"main", "article", "div.content"} {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if text := normalizeText(sel.Text()); text != "" {
			return text
		}
	}
	return ""
}

// extractWholePage is the last resort: page title plus truncated body text.
func extractWholePage(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = "Job Listing"
	}

	body := normalizeText(doc.Find("body").Text())
	if len(body) > fallbackTextLimit {
		body = body[:fallbackTextLimit]
	}
	if body == "" {
		return ""
	}
	return title + "\n" + body
}

func isHeadingNode(sel *goquery.Selection) bool {
	switch goquery.NodeName(sel) {
	case "h1", "h2", "h3", "h4":
		return true
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// normalizeText collapses whitespace runs into single newlines, dropping
// blank lines left over from HTML layout.
func normalizeText(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
