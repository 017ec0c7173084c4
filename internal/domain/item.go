package domain

import (
	"fmt"
	"slices"
	"time"
)

// Kind identifies which content variant an item carries.
type Kind string

const (
	// KindFile items reference an uploaded blob via BlobPath.
	KindFile Kind = "file"
	// KindText items carry inline note content.
	KindText Kind = "text"
	// KindLink items carry a URL.
	KindLink Kind = "link"
)

// Valid reports whether k is one of the known item kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindFile, KindText, KindLink:
		return true
	}
	return false
}

// Item is a user-owned record representing a file, text note, or link.
// Exactly one of Content, URL, or BlobPath is meaningfully populated,
// determined by Kind. SizeDisplay is a preformatted human-readable size:
// "<n> bytes" for text, "<m>.<mm> MB" for files, "-" for links.
type Item struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Name         string    `json:"name"`
	Kind         Kind      `json:"type"`
	Content      string    `json:"content,omitempty"`
	URL          string    `json:"url,omitempty"`
	BlobPath     string    `json:"file_path,omitempty"`
	SizeDisplay  string    `json:"size"`
	CollectionID string    `json:"collection_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsFile reports whether the item references an uploaded blob.
func (i *Item) IsFile() bool {
	return i.Kind == KindFile && i.BlobPath != ""
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
func (i *Item) InitTimestamps() {
	now := time.Now()
	i.CreatedAt = now
	i.UpdatedAt = now
}

// TextSizeDisplay formats the size label for a text item.
func TextSizeDisplay(content string) string {
	return fmt.Sprintf("%d bytes", len(content))
}

// FileSizeDisplay formats the size label for an uploaded file.
// Byte count divided by 1 MiB, two decimal places.
func FileSizeDisplay(byteSize int64) string {
	return fmt.Sprintf("%.2f MB", float64(byteSize)/1024/1024)
}

// LinkSizeDisplay is the size label used for link items.
const LinkSizeDisplay = "-"

// ItemView is an item joined with its collection name and tag names,
// as returned by catalog listings. TagNames are ordered by name — a
// deterministic storage order, not necessarily the order supplied at
// creation.
type ItemView struct {
	Item
	CollectionName string   `json:"collection,omitempty"`
	TagNames       []string `json:"tags"`
}

// HasAllTags reports whether the view's tag set is a superset of want.
func (v *ItemView) HasAllTags(want []string) bool {
	for _, name := range want {
		if !slices.Contains(v.TagNames, name) {
			return false
		}
	}
	return true
}
