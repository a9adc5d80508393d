package receipt

import (
	"regexp"
	"time"

	dErrors "tally/pkg/domain-errors"
)

var (
	retailerPattern    = regexp.MustCompile(`^[\w\s\-&]+$`)
	descriptionPattern = regexp.MustCompile(`^[\w\s\-]+$`)
	amountPattern      = regexp.MustCompile(`^\d+\.\d{2}$`)
)

// requiredFields is checked in this order; the first missing field wins.
var requiredFields = []string{"retailer", "purchaseDate", "purchaseTime", "items", "total"}

// Validate checks a decoded payload against the receipt grammar. Checks run in
// a fixed order and stop at the first violation; the returned error message is
// the client-facing reason. A field present with the wrong type fails its
// format check, not the presence check.
func Validate(payload map[string]any) error {
	for _, field := range requiredFields {
		if _, ok := payload[field]; !ok {
			return dErrors.New(dErrors.CodeBadRequest, "Missing required field: "+field)
		}
	}

	retailer, ok := payload["retailer"].(string)
	if !ok || !retailerPattern.MatchString(retailer) {
		return dErrors.New(dErrors.CodeBadRequest, "Invalid retailer format")
	}

	date, ok := payload["purchaseDate"].(string)
	if !ok || !validDate(date) {
		return dErrors.New(dErrors.CodeBadRequest, "Invalid purchaseDate format")
	}

	clock, ok := payload["purchaseTime"].(string)
	if !ok || !validClock(clock) {
		return dErrors.New(dErrors.CodeBadRequest, "Invalid purchaseTime format")
	}

	items, ok := payload["items"].([]any)
	if !ok || len(items) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "Items must be a non-empty array")
	}

	for _, raw := range items {
		entry, ok := raw.(map[string]any)
		if !ok {
			return dErrors.New(dErrors.CodeBadRequest, "Item missing shortDescription or price")
		}
		if _, ok := entry["shortDescription"]; !ok {
			return dErrors.New(dErrors.CodeBadRequest, "Item missing shortDescription or price")
		}
		if _, ok := entry["price"]; !ok {
			return dErrors.New(dErrors.CodeBadRequest, "Item missing shortDescription or price")
		}

		description, ok := entry["shortDescription"].(string)
		if !ok || !descriptionPattern.MatchString(description) {
			return dErrors.New(dErrors.CodeBadRequest, "Invalid item shortDescription format")
		}
		price, ok := entry["price"].(string)
		if !ok || !amountPattern.MatchString(price) {
			return dErrors.New(dErrors.CodeBadRequest, "Invalid item price format")
		}
	}

	total, ok := payload["total"].(string)
	if !ok || !amountPattern.MatchString(total) {
		return dErrors.New(dErrors.CodeBadRequest, "Invalid total format")
	}

	return nil
}

// validDate accepts exactly zero-padded YYYY-MM-DD calendar dates. time.Parse
// is lenient about field widths, so the re-format comparison enforces the
// exact shape.
func validDate(s string) bool {
	parsed, err := time.Parse("2006-01-02", s)
	return err == nil && parsed.Format("2006-01-02") == s
}

// validClock accepts exactly zero-padded 24-hour HH:MM.
func validClock(s string) bool {
	parsed, err := time.Parse("15:04", s)
	return err == nil && parsed.Format("15:04") == s
}

// FromPayload builds a typed Receipt from a payload that already passed
// Validate. The type assertions are safe only after validation.
func FromPayload(payload map[string]any) Receipt {
	rawItems := payload["items"].([]any)
	items := make([]Item, 0, len(rawItems))
	for _, raw := range rawItems {
		entry := raw.(map[string]any)
		items = append(items, Item{
			ShortDescription: entry["shortDescription"].(string),
			Price:            entry["price"].(string),
		})
	}

	return Receipt{
		Retailer:     payload["retailer"].(string),
		PurchaseDate: payload["purchaseDate"].(string),
		PurchaseTime: payload["purchaseTime"].(string),
		Items:        items,
		Total:        payload["total"].(string),
	}
}
