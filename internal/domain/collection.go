package domain

import "time"

// DefaultCollectionName is the collection provisioned for every new user.
const DefaultCollectionName = "Personal"

// Collection is a named grouping of items. An item belongs to at most one
// collection. Names are case-sensitive and, by convention, unique per owner —
// but creation does not enforce uniqueness, so duplicates are possible under
// concurrent get-or-create calls.
type Collection struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
func (c *Collection) InitTimestamps() {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
}
