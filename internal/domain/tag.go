package domain

import "time"

// Tag is a per-user label, many-to-many with items. Names are case-sensitive
// and unique per owner; get-or-create returns the existing row on a name hit.
type Tag struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
func (t *Tag) InitTimestamps() {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
}

// ItemTag is the association row linking an item to a tag. No payload.
type ItemTag struct {
	ItemID    string    `json:"item_id"`
	TagID     string    `json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}
