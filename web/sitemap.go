package web

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// FetchSitemap retrieves a sitemap and returns the text of every <loc>
// element in document order. The client may be nil, in which case
// http.DefaultClient is used.
//
// A transport error, a non-200 response, or a malformed XML body is returned
// as an error; the caller treats these as fatal for the batch.
func FetchSitemap(ctx context.Context, client *http.Client, sitemapURL string) ([]string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sitemap: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch sitemap: HTTP %d", resp.StatusCode)
	}

	urls, err := parseSitemap(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse sitemap: %w", err)
	}
	return urls, nil
}

// parseSitemap scans the XML stream for <loc> elements. Scanning tokens
// rather than unmarshaling a fixed schema also covers sitemap index files.
func parseSitemap(r io.Reader) ([]string, error) {
	var urls []string
	decoder := xml.NewDecoder(r)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "loc" {
			continue
		}

		var loc string
		if err := decoder.DecodeElement(&loc, &start); err != nil {
			return nil, err
		}
		if loc = strings.TrimSpace(loc); loc != "" {
			urls = append(urls, loc)
		}
	}

	return urls, nil
}
