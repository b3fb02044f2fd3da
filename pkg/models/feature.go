package models

// Feature is a single web platform feature record. Records are immutable
// once loaded into a catalog.
type Feature struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Status      Status   `json:"status"`
	Description string   `json:"description"`
	MDNURL      string   `json:"mdn_url,omitempty"`
}

// Category groups features by platform area.
type Category string

const (
	CategoryHTML       Category = "html"
	CategoryCSS        Category = "css"
	CategoryJavaScript Category = "javascript"
	CategoryAPI        Category = "api"
)

// Categories returns the closed category set in display order.
func Categories() []Category {
	return []Category{CategoryHTML, CategoryCSS, CategoryJavaScript, CategoryAPI}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryHTML, CategoryCSS, CategoryJavaScript, CategoryAPI:
		return true
	}
	return false
}

// Status is the support-maturity flag of a feature.
type Status string

const (
	StatusBaseline    Status = "baseline"
	StatusNotBaseline Status = "not-baseline"
)

func (s Status) Valid() bool {
	return s == StatusBaseline || s == StatusNotBaseline
}
