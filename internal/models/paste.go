package models

import "time"

// Visibility values persisted alongside a paste. The value is derived
// from ownership, never set directly: an owned paste is private, an
// anonymous one is public by id-knowledge.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Paste is the sole persistent entity: a stored text document with an
// optional title, expiration and language label.
type Paste struct {
	ID         string     `db:"id" json:"id"`
	Title      string     `db:"title" json:"title"`
	Content    string     `db:"content" json:"content"`
	UserID     *string    `db:"user_id" json:"user_id,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	ExpiresAt  *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	Language   Language   `db:"language" json:"language"`
	Burn       bool       `db:"burn" json:"burn"`
	Visibility string     `db:"visibility" json:"visibility"`
}

// IsExpired reports whether the paste's expiry timestamp has passed.
// nil ExpiresAt means the paste never expires. Evaluated against the
// supplied clock on every read, never cached.
func (p *Paste) IsExpired(now time.Time) bool {
	if p.ExpiresAt == nil {
		return false
	}
	return !now.Before(*p.ExpiresAt)
}

// OwnedBy reports whether identity matches the paste owner. Anonymous
// pastes have no owner and are owned by nobody.
func (p *Paste) OwnedBy(identity *string) bool {
	if p.UserID == nil || *p.UserID == "" {
		return false
	}
	return identity != nil && *identity == *p.UserID
}

// Anonymous reports whether the paste was created without an identity.
func (p *Paste) Anonymous() bool {
	return p.UserID == nil || *p.UserID == ""
}

// DeriveVisibility returns the visibility value the store expects for
// the paste's ownership state.
func (p *Paste) DeriveVisibility() string {
	if p.Anonymous() {
		return VisibilityPublic
	}
	return VisibilityPrivate
}

// ExpirationChoice enumerates the creation-time expiry options.
type ExpirationChoice string

const (
	Expire1Week     ExpirationChoice = "1week"
	Expire1Month    ExpirationChoice = "1month"
	ExpirePermanent ExpirationChoice = "permanent"
)

// expirationOffsets mirrors the creation form's option set.
var expirationOffsets = map[ExpirationChoice]time.Duration{
	Expire1Week:  7 * 24 * time.Hour,
	Expire1Month: 30 * 24 * time.Hour,
}

// Valid reports whether the choice is one of the enumerated options.
func (c ExpirationChoice) Valid() bool {
	if c == ExpirePermanent {
		return true
	}
	_, ok := expirationOffsets[c]
	return ok
}

// ExpiresAt resolves the choice against the given creation time.
// Permanent maps to nil.
func (c ExpirationChoice) ExpiresAt(now time.Time) *time.Time {
	offset, ok := expirationOffsets[c]
	if !ok {
		return nil
	}
	t := now.Add(offset)
	return &t
}

// PasteFilter captures the in-memory list filters: a case-insensitive
// substring match against title or content, and a creation-date cutoff.
// Both compose with logical AND; empty fields match everything.
type PasteFilter struct {
	Search       string
	CreatedAfter *time.Time
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
