package receipt

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Fingerprint returns a stable hex digest of the receipt's canonical content.
// Marshaling the typed struct fixes the field order, so two submissions with
// identical field values hash identically regardless of the JSON key order
// they arrived in. Item sequence order is significant.
func (r Receipt) Fingerprint() string {
	canonical, _ := json.Marshal(r)
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}
