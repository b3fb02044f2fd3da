package models

import "strings"

// FilterAll is the permissive value shared by both filter axes.
const FilterAll = "all"

// CategoryFilter is either FilterAll or one of the categories.
type CategoryFilter string

// StatusFilter is either FilterAll or "baseline". There is deliberately no
// filter value that selects only not-baseline features.
type StatusFilter string

const (
	CategoryFilterAll CategoryFilter = FilterAll
	StatusFilterAll   StatusFilter   = FilterAll
	StatusFilterBase  StatusFilter   = StatusFilter(StatusBaseline)
)

// ParseCategoryFilter coerces free-form input to a category filter. Anything
// outside the closed set becomes CategoryFilterAll.
func ParseCategoryFilter(s string) CategoryFilter {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.Valid() {
		return CategoryFilter(c)
	}
	return CategoryFilterAll
}

// ParseStatusFilter coerces free-form input to a status filter. Only
// "baseline" narrows the view; everything else becomes StatusFilterAll.
func ParseStatusFilter(s string) StatusFilter {
	if Status(strings.ToLower(strings.TrimSpace(s))) == StatusBaseline {
		return StatusFilterBase
	}
	return StatusFilterAll
}

// Matches reports whether a feature passes the category axis.
func (f CategoryFilter) Matches(c Category) bool {
	return f == CategoryFilterAll || Category(f) == c
}

// Matches reports whether a feature passes the status axis.
func (f StatusFilter) Matches(s Status) bool {
	return f == StatusFilterAll || s == StatusBaseline
}
