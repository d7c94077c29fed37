package sheets

// ShipmentsFeedAPI defines the interface for fetching the published
// shipments feed
type ShipmentsFeedAPI interface {
	FetchShipmentsCSV() (string, error)
}
