package domain

import (
	"strings"
	"time"
)

// AllCategories is the pseudo-category the storefront uses for "no filter".
const AllCategories = "all"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Image       string    `json:"image"`
	CategoryID  string    `json:"categoryId"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Filter struct {
	CategoryID string
	Query      string
	ActiveOnly bool
}

// Matches applies category, search and active filtering. Search is a
// case-insensitive substring match on name or description.
func (f Filter) Matches(p Product) bool {
	if f.ActiveOnly && !p.IsActive {
		return false
	}

	cat := strings.TrimSpace(f.CategoryID)
	if cat != "" && cat != AllCategories && p.CategoryID != cat {
		return false
	}

	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

// Storefront is what the landing page needs in one round trip.
type Storefront struct {
	Categories []Category `json:"categories"`
	Products   []Product  `json:"products"`
}
