package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a minimal projection of the hosted auth service's account record.
// Registration and login live outside this backend; we only keep the row the
// foreign keys need.
type User struct {
	Id          uuid.UUID
	DisplayName string
	Email       string
	CreatedAt   time.Time
}
