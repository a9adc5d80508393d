// Package receipt holds the purchase receipt domain: the typed model, the
// payload validator, the content fingerprint used for deduplication, the
// in-memory store, and the points scoring rules.
package receipt

// Receipt is the purchase record submitted by a client for scoring. Monetary
// amounts keep their submitted text form so exact formatting survives a
// store round-trip.
type Receipt struct {
	Retailer     string `json:"retailer"`
	PurchaseDate string `json:"purchaseDate"`
	PurchaseTime string `json:"purchaseTime"`
	Items        []Item `json:"items"`
	Total        string `json:"total"`
}

// Item is a single line on a receipt.
type Item struct {
	ShortDescription string `json:"shortDescription"`
	Price            string `json:"price"`
}
