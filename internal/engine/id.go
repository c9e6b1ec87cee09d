package engine

import "github.com/google/uuid"

// generateID returns a random id for a session and its run record.
func generateID() string {
	return uuid.NewString()
}
