package session

import "time"

// Record defines a public type used by goSession APIs.
//
// Record instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Record struct {
	ID        string
	UserID    string
	Revoked   bool
	IP        string
	UserAgent string
	CreatedAt time.Time
}

// Metadata captures optional request context stored alongside a new record.
type Metadata struct {
	IP        string
	UserAgent string
}
