package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/portfolio-site/portfolio-backend/internal/apperr"
	"github.com/portfolio-site/portfolio-backend/internal/validation"
)

var ErrNotFound = fmt.Errorf("project %w", apperr.ErrNotFound)

type Category string

const (
	CategoryWeb      Category = "web"
	CategorySecurity Category = "security"
)

func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryWeb, CategorySecurity:
		return c, nil
	default:
		return "", apperr.Invalid("category", "must be one of: web security")
	}
}

// Project is a portfolio case study. Images hold public URLs in upload
// order; the catalog shows them reversed.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        string    `json:"link,omitempty"`
	Images      []string  `json:"images"`
	Tech        []string  `json:"tech"`
	Category    Category  `json:"category"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
}

// Fields are the admin-editable attributes. Images are deliberately absent:
// they are set once at creation and never rewritten.
type Fields struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Link        string   `json:"link"`
	Tech        []string `json:"tech"`
	Category    Category `json:"category" validate:"oneof=web security"`
}

// Normalize trims text fields and cleans the tech list.
func (f Fields) Normalize() Fields {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.Link = strings.TrimSpace(f.Link)
	f.Category = Category(strings.ToLower(strings.TrimSpace(string(f.Category))))
	f.Tech = cleanTech(f.Tech)
	return f
}

func (f Fields) Validate() error {
	return validation.Struct(f)
}

// ParseTech splits comma separated input into tags, dropping blanks.
func ParseTech(input string) []string {
	return cleanTech(strings.Split(input, ","))
}

func cleanTech(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
