// Package slugify derives URL-safe company codes from display names.
package slugify

import (
	"github.com/gosimple/slug"
)

// Slugger turns a display name into a lowercase URL-safe identifier
type Slugger interface {
	Slug(name string) string
}

// Func adapts a plain function to the Slugger interface
type Func func(name string) string

// Slug calls f
func (f Func) Slug(name string) string {
	return f(name)
}

// Default lowercases and transliterates names, joining words with hyphens.
// Symbols are spelled out (& becomes "and", @ becomes "at") and underscores are kept.
type Default struct{}

func (Default) Slug(name string) string {
	return slug.Make(name)
}
