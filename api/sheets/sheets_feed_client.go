package sheets

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strings"

	"sd-server/api"
)

const BASE64_CSV_PREFIX = "data:text/csv;base64,"

// SheetsFeedClient fetches the published Google Sheets CSV export. The
// export endpoint is rate limited and occasionally refuses direct requests,
// so after a direct attempt the client walks a list of public relay
// services until one returns a body.
type SheetsFeedClient struct {
	*api.HTTPClient // Embed HTTPClient to reuse its methods and properties
	FeedURL         string
}

// NewSheetsFeedClient creates a new instance of SheetsFeedClient
func NewSheetsFeedClient(httpClient *api.HTTPClient, feedURL string) *SheetsFeedClient {
	return &SheetsFeedClient{
		HTTPClient: httpClient,
		FeedURL:    feedURL,
	}
}

// FetchShipmentsCSV retrieves the raw CSV text of the shipments feed.
func (c *SheetsFeedClient) FetchShipmentsCSV() (string, error) {
	attempts := []struct {
		name     string
		endpoint string
		envelope bool // response wraps the body in a JSON envelope
	}{
		{"direct", c.FeedURL, false},
		{"codetabs", "https://api.codetabs.com/v1/proxy?quest=" + url.QueryEscape(c.FeedURL), false},
		{"cors-anywhere", "https://cors-anywhere.herokuapp.com/" + c.FeedURL, false},
		{"allorigins", "https://api.allorigins.win/get?url=" + url.QueryEscape(c.FeedURL), true},
	}

	var lastErr error
	for _, attempt := range attempts {
		body, err := c.RequestText("GET", attempt.endpoint, nil)
		if err != nil {
			log.Printf("[SheetsFeedClient] Fetch via %s failed: %v", attempt.name, err)
			lastErr = err
			continue
		}

		if attempt.envelope {
			body, err = unwrapEnvelope(body)
			if err != nil {
				log.Printf("[SheetsFeedClient] Fetch via %s returned a bad envelope: %v", attempt.name, err)
				lastErr = err
				continue
			}
		}

		csvText, err := decodeFeedBody(body)
		if err != nil {
			log.Printf("[SheetsFeedClient] Fetch via %s returned undecodable content: %v", attempt.name, err)
			lastErr = err
			continue
		}
		return csvText, nil
	}

	return "", fmt.Errorf("all feed endpoints failed: %w", lastErr)
}

// unwrapEnvelope extracts the body from the allorigins JSON envelope.
func unwrapEnvelope(body string) (string, error) {
	var envelope struct {
		Contents string `json:"contents"`
	}
	if err := json.Unmarshal([]byte(body), &envelope); err != nil {
		return "", fmt.Errorf("failed to unmarshal feed envelope: %w", err)
	}
	if envelope.Contents == "" {
		return "", fmt.Errorf("feed envelope had no contents")
	}
	return envelope.Contents, nil
}

// decodeFeedBody handles relays that deliver the sheet as a base64 data URI
// instead of plain text.
func decodeFeedBody(body string) (string, error) {
	if !strings.HasPrefix(body, BASE64_CSV_PREFIX) {
		return body, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(body, BASE64_CSV_PREFIX))
	if err != nil {
		return "", fmt.Errorf("failed to decode base64 feed body: %w", err)
	}
	return string(decoded), nil
}
