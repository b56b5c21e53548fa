package application

import (
	"strings"

	"github.com/google/uuid"

	"databazaar/contexts/marketplace/registry-service/ports"
)

// isCanonicalID accepts exactly the hyphenated 8-4-4-4-12 hex form,
// case-insensitive. Checked before any by-id store lookup so malformed ids
// fail with an invalid-payload error instead of a generic not-found.
func isCanonicalID(id string) bool {
	return len(id) == 36 && uuid.Validate(id) == nil
}

// validateDataItemPayload collects every violation instead of stopping at the
// first so callers can fix all input problems in one round trip.
func validateDataItemPayload(payload ports.DataItemPayload) []string {
	var violations []string
	if strings.TrimSpace(payload.Description) == "" {
		violations = append(violations, "description must not be empty")
	}
	if strings.TrimSpace(payload.Quality) == "" {
		violations = append(violations, "quality must not be empty")
	}
	if strings.TrimSpace(payload.Title) == "" {
		violations = append(violations, "title must not be empty")
	}
	if strings.TrimSpace(payload.AttachmentURL) == "" {
		violations = append(violations, "attachmentURL must not be empty")
	}
	if payload.Price == 0 {
		violations = append(violations, "price must be greater than zero")
	}
	return violations
}

func validatePurchaserPayload(payload ports.PurchaserPayload) []string {
	var violations []string
	if strings.TrimSpace(payload.Name) == "" {
		violations = append(violations, "name must not be empty")
	}
	if strings.TrimSpace(payload.Message) == "" {
		violations = append(violations, "message must not be empty")
	}
	if payload.Price == 0 {
		violations = append(violations, "price must be greater than zero")
	}
	return violations
}
