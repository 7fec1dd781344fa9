package unit_test

import (
	"time"

	"github.com/google/uuid"
)

func stringPtr(s string) *string {
	return &s
}

func uuidPtr(id uuid.UUID) *uuid.UUID {
	return &id
}

func timePtr(t time.Time) *time.Time {
	return &t
}
