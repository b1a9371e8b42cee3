package core

// Category is one of the ten fixed expense categories.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryUtilities     Category = "utilities"
	CategoryEntertainment Category = "entertainment"
	CategoryHousing       Category = "housing"
	CategoryHealthcare    Category = "healthcare"
	CategoryEducation     Category = "education"
	CategoryShopping      Category = "shopping"
	CategoryTravel        Category = "travel"
	CategoryOther         Category = "other"
)

// CategoryInfo holds the canonical display metadata for a category.
// It is the single lookup table for labels, colors and icons; consumers
// must not carry their own copies.
type CategoryInfo struct {
	Label string
	Color string // hex, e.g. "#F59E0B"
	Icon  string
}

// categories lists every category in canonical order. The order is load
// bearing: it drives series ordering and the top-category tie-break.
var categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryHousing,
	CategoryHealthcare,
	CategoryEducation,
	CategoryShopping,
	CategoryTravel,
	CategoryOther,
}

var categoryInfo = map[Category]CategoryInfo{
	CategoryFood:          {Label: "Food & Dining", Color: "#F59E0B", Icon: "utensils"},
	CategoryTransport:     {Label: "Transportation", Color: "#3B82F6", Icon: "car"},
	CategoryUtilities:     {Label: "Utilities", Color: "#14B8A6", Icon: "plug"},
	CategoryEntertainment: {Label: "Entertainment", Color: "#A855F7", Icon: "film"},
	CategoryHousing:       {Label: "Housing & Rent", Color: "#22C55E", Icon: "home"},
	CategoryHealthcare:    {Label: "Healthcare", Color: "#F43F5E", Icon: "heart-pulse"},
	CategoryEducation:     {Label: "Education", Color: "#6366F1", Icon: "graduation-cap"},
	CategoryShopping:      {Label: "Shopping", Color: "#EC4899", Icon: "shopping-bag"},
	CategoryTravel:        {Label: "Travel", Color: "#06B6D4", Icon: "plane"},
	CategoryOther:         {Label: "Other", Color: "#64748B", Icon: "more-horizontal"},
}

// Categories returns the full category enumeration in canonical order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c is one of the ten known categories.
func (c Category) Valid() bool {
	_, ok := categoryInfo[c]
	return ok
}

// Info returns the display metadata for c. Unknown categories fall back
// to the "other" metadata so callers always get a usable color and label.
func (c Category) Info() CategoryInfo {
	if info, ok := categoryInfo[c]; ok {
		return info
	}
	return categoryInfo[CategoryOther]
}

// Label is a shorthand for Info().Label.
func (c Category) Label() string {
	return c.Info().Label
}
