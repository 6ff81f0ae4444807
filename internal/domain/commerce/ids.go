package commerce

import (
	"fmt"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Identifier Normalization
// ---------------------------------------------------------------------------

// gidPrefix is the scheme Shopify uses for its composite global IDs,
// e.g. "gid://shopify/Order/5479106625723".
const gidPrefix = "gid://"

// ExtractNumericID extracts the trailing numeric segment from a Shopify
// global ID. Inputs that do not match the gid structure are returned
// unchanged, so already-canonical IDs (and Swap IDs, which are plain strings)
// pass through untouched. Deterministic and side-effect-free; never fails.
func ExtractNumericID(rawID string) string {
	if !strings.HasPrefix(rawID, gidPrefix) {
		return rawID
	}

	trimmed := rawID
	// Some gids carry query parameters (e.g. "...?key=value"); drop them.
	if idx := strings.IndexByte(trimmed, '?'); idx >= 0 {
		trimmed = trimmed[:idx]
	}

	segments := strings.Split(trimmed, "/")
	last := segments[len(segments)-1]
	if last == "" {
		return rawID
	}
	if _, err := strconv.ParseUint(last, 10, 64); err != nil {
		return rawID
	}
	return last
}

// ShopifyGID builds a Shopify global ID from a kind and a numeric ID.
// Inverse of ExtractNumericID for well-formed inputs.
func ShopifyGID(kind, numericID string) string {
	return fmt.Sprintf("gid://shopify/%s/%s", kind, numericID)
}

// ExtractOrderNumber derives a numeric order number from a human-readable
// order name such as "#1234" or "EXP1042". It takes the first run of digits
// found anywhere in the name and returns 0 when none is present. Best-effort:
// exotic naming schemes (a date embedded in the name, for instance) can yield
// a misleading number, so the result is never used as an upsert key.
func ExtractOrderNumber(name string) int {
	start := -1
	for i, r := range name {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, _ := strconv.Atoi(name[start:i])
			return n
		}
	}
	if start < 0 {
		return 0
	}
	n, _ := strconv.Atoi(name[start:])
	return n
}
