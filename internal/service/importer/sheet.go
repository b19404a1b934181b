package importer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/luxor-creek/Personalized-App/internal/domain"
	"github.com/luxor-creek/Personalized-App/pkg/tracing"
)

var (
	sheetIDPattern  = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)
	sheetGIDPattern = regexp.MustCompile(`[#?&]gid=([0-9]+)`)
)

// SheetExportURL turns a Google Sheets share link into its CSV export URL,
// keeping the selected tab when the link names one
func SheetExportURL(shareURL string) (string, error) {
	m := sheetIDPattern.FindStringSubmatch(strings.TrimSpace(shareURL))
	if m == nil {
		return "", domain.NewValidationError(msgInvalidSheetURL)
	}
	export := "https://docs.google.com/spreadsheets/d/" + m[1] + "/export?format=csv"
	if gid := sheetGIDPattern.FindStringSubmatch(shareURL); gid != nil {
		export += "&gid=" + gid[1]
	}
	return export, nil
}

// SheetFetcher downloads the delimited text behind a spreadsheet export URL
type SheetFetcher interface {
	Fetch(ctx context.Context, exportURL string) (string, error)
}

// HTTPSheetFetcher fetches exports over HTTP. Every failure is reported as a
// *domain.FetchError with a message the user can act on.
type HTTPSheetFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPSheetFetcher wraps client with tracing. A nil client gets a default one.
func NewHTTPSheetFetcher(client *http.Client, maxBytes int64) *HTTPSheetFetcher {
	if maxBytes <= 0 {
		maxBytes = domain.DefaultMaxUploadBytes
	}
	return &HTTPSheetFetcher{
		client:   tracing.WrapHTTPClient(client),
		maxBytes: maxBytes,
	}
}

func (f *HTTPSheetFetcher) Fetch(ctx context.Context, exportURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
	if err != nil {
		return "", inaccessible(err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", inaccessible(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", inaccessible(fmt.Errorf("unexpected status code %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", inaccessible(err)
	}
	if int64(len(body)) > f.maxBytes {
		return "", &domain.TooLargeError{Size: int64(len(body)), Limit: f.maxBytes}
	}

	// Private sheets redirect to a sign-in page instead of failing
	if title, ok := htmlPage(resp.Header.Get("Content-Type"), body); ok {
		return "", inaccessible(fmt.Errorf("received an HTML page (%q) instead of CSV", title))
	}
	return string(body), nil
}

func inaccessible(err error) error {
	return &domain.FetchError{Source: string(domain.ImportSourceSheet), Message: msgSheetInaccessible, Err: err}
}

// htmlPage reports whether body is an HTML document and returns its title
func htmlPage(contentType string, body []byte) (string, bool) {
	head := strings.ToLower(strings.TrimSpace(string(body[:min(len(body), 512)])))
	isHTML := strings.HasPrefix(strings.ToLower(contentType), "text/html") ||
		strings.HasPrefix(head, "<!doctype html") ||
		strings.HasPrefix(head, "<html")
	if !isHTML {
		return "", false
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", true
	}
	return strings.TrimSpace(doc.Find("title").First().Text()), true
}
