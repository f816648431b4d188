package postgres

import "github.com/google/uuid"

// validUUID screens identifiers before they reach the driver, so a
// malformed id reads as a missing row instead of an encoding error.
func validUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
