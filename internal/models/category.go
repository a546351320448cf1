package models

// DefaultCategoryColor is the color the backend assigns when none is given.
const DefaultCategoryColor = "#3498db"

// UncategorizedColor is used when rendering transactions without a category.
const UncategorizedColor = "#95a5a6"

// Category is a user-defined label with a display color.
type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CategoryInput is the body of POST /api/categories and PUT /api/categories/{id}.
type CategoryInput struct {
	Name  string `json:"name,omitempty"`
	Color string `json:"color,omitempty"`
}

// LearnedRule is a categorization rule the backend learned from manual edits.
type LearnedRule struct {
	ID          int    `json:"id"`
	Pattern     string `json:"pattern"`
	CategoryID  *int   `json:"category_id"`
	Category    string `json:"category"`
	IsEssential bool   `json:"is_essential"`
	MatchCount  int    `json:"match_count"`
}
