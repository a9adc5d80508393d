package receipt

import (
	"strconv"
	"strings"
	"time"
)

// Points computes the loyalty score for a validated receipt as the sum of
// seven independent rules. The function is pure: it never mutates the receipt
// and always returns the same score for the same content.
func Points(r Receipt) int {
	points := 0

	// One point per ASCII alphanumeric character in the retailer name.
	for _, c := range r.Retailer {
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			points++
		}
	}

	// Whole-dollar and quarter-multiple bonuses, evaluated on integer cents.
	// Float modulo would misclassify some amounts.
	totalCents := cents(r.Total)
	if totalCents%100 == 0 {
		points += 50
	}
	if totalCents%25 == 0 {
		points += 25
	}

	// Five points per complete pair of items.
	points += len(r.Items) / 2 * 5

	// ceil(price * 0.2) for items whose trimmed description length is a
	// multiple of three. price*0.2 in cents is cents/500, so the integer
	// ceiling is (cents+499)/500.
	for _, item := range r.Items {
		trimmed := strings.TrimSpace(item.ShortDescription)
		if len(trimmed)%3 == 0 {
			points += int((cents(item.Price) + 499) / 500)
		}
	}

	if day, err := time.Parse("2006-01-02", r.PurchaseDate); err == nil && day.Day()%2 == 1 {
		points += 6
	}

	// Ten points strictly between 14:00 and 16:00, exclusive at both ends.
	if clock, err := time.Parse("15:04", r.PurchaseTime); err == nil {
		minute := clock.Hour()*60 + clock.Minute()
		if minute > 14*60 && minute < 16*60 {
			points += 10
		}
	}

	return points
}

// cents converts a validated \d+\.\d{2} amount into integer cents.
func cents(amount string) int64 {
	dollars, _ := strconv.ParseInt(amount[:len(amount)-3], 10, 64)
	fraction, _ := strconv.ParseInt(amount[len(amount)-2:], 10, 64)
	return dollars*100 + fraction
}
