package wardrobe

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Category is the closed set of wardrobe slots.
type Category string

const (
	CategoryTop       Category = "top"
	CategoryBottom    Category = "bottom"
	CategoryOuterwear Category = "outerwear"
	CategoryFootwear  Category = "footwear"
	CategoryAccessory Category = "accessory"
)

// Categories lists every category in canonical order.
var Categories = []Category{CategoryTop, CategoryBottom, CategoryOuterwear, CategoryFootwear, CategoryAccessory}

// Insulation describes how warm an item is.
type Insulation string

const (
	InsulationLight  Insulation = "light"
	InsulationMedium Insulation = "medium"
	InsulationHeavy  Insulation = "heavy"
)

// Formality describes the dress code an item suits.
type Formality string

const (
	FormalityCasual         Formality = "casual"
	FormalityBusinessCasual Formality = "business casual"
	FormalityFormal         Formality = "formal"
)

// ParseCategory validates a raw category value.
func ParseCategory(raw string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(raw))); c {
	case CategoryTop, CategoryBottom, CategoryOuterwear, CategoryFootwear, CategoryAccessory:
		return c, nil
	default:
		return "", fmt.Errorf("unknown category %q", raw)
	}
}

// ParseInsulation validates a raw insulation level.
func ParseInsulation(raw string) (Insulation, error) {
	switch i := Insulation(strings.ToLower(strings.TrimSpace(raw))); i {
	case InsulationLight, InsulationMedium, InsulationHeavy:
		return i, nil
	default:
		return "", fmt.Errorf("unknown insulation level %q", raw)
	}
}

// ParseFormality validates a raw formality value.
func ParseFormality(raw string) (Formality, error) {
	switch f := Formality(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormalityCasual, FormalityBusinessCasual, FormalityFormal:
		return f, nil
	default:
		return "", fmt.Errorf("unknown formality %q", raw)
	}
}

// Item is a single piece of clothing owned by a user.
type Item struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	Name         string     `json:"name"`
	Category     Category   `json:"category"`
	Insulation   Insulation `json:"insulation_level"`
	Waterproof   bool       `json:"waterproof"`
	UVProtection bool       `json:"uv_protection"`
	Formality    Formality  `json:"formality"`
	Color        string     `json:"color,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Validate checks the closed enums of an item read from storage.
func (i Item) Validate() error {
	if c, err := ParseCategory(string(i.Category)); err != nil || c != i.Category {
		return fmt.Errorf("item %d: %w", i.ID, nonCanonical("category", string(i.Category), err))
	}
	if l, err := ParseInsulation(string(i.Insulation)); err != nil || l != i.Insulation {
		return fmt.Errorf("item %d: %w", i.ID, nonCanonical("insulation level", string(i.Insulation), err))
	}
	if f, err := ParseFormality(string(i.Formality)); err != nil || f != i.Formality {
		return fmt.Errorf("item %d: %w", i.ID, nonCanonical("formality", string(i.Formality), err))
	}
	return nil
}

// nonCanonical reports err, or a mismatch when the value parsed but is not stored lowercase.
func nonCanonical(field, value string, err error) error {
	if err != nil {
		return err
	}
	return fmt.Errorf("%s %q is not canonical", field, value)
}

// ItemInput is the create/update payload.
type ItemInput struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	Insulation   string `json:"insulation_level"`
	Waterproof   bool   `json:"waterproof"`
	UVProtection bool   `json:"uv_protection"`
	Formality    string `json:"formality"`
	Color        string `json:"color"`
	Notes        string `json:"notes"`
}

// ListRequest filters and paginates a user's wardrobe. Page 0 disables paging.
type ListRequest struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	Category string `form:"category"`
	Query    string `form:"q"`
}

// ListResponse carries a wardrobe listing. Paged selects the wire shape:
// unpaged lists render {items,total}, paged lists render
// {items,totalItems,totalPages,currentPage}.
type ListResponse struct {
	Items       []Item
	Total       int
	Paged       bool
	TotalItems  int
	TotalPages  int
	CurrentPage int
}

type unpagedList struct {
	Items []Item `json:"items"`
	Total int    `json:"total"`
}

type pagedList struct {
	Items       []Item `json:"items"`
	TotalItems  int    `json:"totalItems"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
}

func (r ListResponse) MarshalJSON() ([]byte, error) {
	items := r.Items
	if items == nil {
		items = []Item{}
	}
	if r.Paged {
		return json.Marshal(pagedList{Items: items, TotalItems: r.TotalItems, TotalPages: r.TotalPages, CurrentPage: r.CurrentPage})
	}
	return json.Marshal(unpagedList{Items: items, Total: r.Total})
}

func (r *ListResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Items       []Item `json:"items"`
		Total       *int   `json:"total"`
		TotalItems  int    `json:"totalItems"`
		TotalPages  int    `json:"totalPages"`
		CurrentPage int    `json:"currentPage"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = ListResponse{Items: raw.Items}
	if raw.Total != nil {
		r.Total = *raw.Total
		return nil
	}
	r.Paged = true
	r.TotalItems, r.TotalPages, r.CurrentPage = raw.TotalItems, raw.TotalPages, raw.CurrentPage
	return nil
}

// Filter is the repository-level query built from a ListRequest.
type Filter struct {
	Category Category
	Query    string
	Limit    int
	Offset   int
}
