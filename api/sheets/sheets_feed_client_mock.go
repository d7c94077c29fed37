package sheets

import (
	"fmt"
	"io/ioutil"

	"sd-server/config"
)

// SheetsFeedClientMock serves a feed snapshot from disk instead of the
// network, for local development and tests.
type SheetsFeedClientMock struct {
	feedPath string
}

// NewSheetsFeedClientMock creates a new instance of SheetsFeedClientMock
// reading the bundled feed snapshot.
func NewSheetsFeedClientMock() *SheetsFeedClientMock {
	return NewSheetsFeedClientMockWithPath(config.GetResourcePath(config.SHIPMENT_FEED_RESOURCE))
}

// NewSheetsFeedClientMockWithPath creates a mock reading an arbitrary
// snapshot file.
func NewSheetsFeedClientMockWithPath(feedPath string) *SheetsFeedClientMock {
	return &SheetsFeedClientMock{feedPath: feedPath}
}

// FetchShipmentsCSV returns the snapshot's contents as raw CSV text.
func (c *SheetsFeedClientMock) FetchShipmentsCSV() (string, error) {
	data, err := ioutil.ReadFile(c.feedPath)
	if err != nil {
		return "", fmt.Errorf("failed to read feed snapshot %q: %w", c.feedPath, err)
	}
	return string(data), nil
}
