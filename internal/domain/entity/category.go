package entity

// Known categories returned by the classification service
const (
	CategoryWorldNews   = "World News"
	CategorySports      = "Sports"
	CategoryBusiness    = "Business"
	CategoryScienceTech = "Science/Tech"
)

// DefaultCategoryColor is used for categories outside the known label set
const DefaultCategoryColor = "#3B82F6"

var categoryColors = map[string]string{
	CategoryWorldNews:   "#3B82F6",
	CategorySports:      "#10B981",
	CategoryBusiness:    "#F59E0B",
	CategoryScienceTech: "#EC4899",
}

// KnownCategories returns the fixed label set in display order
func KnownCategories() []string {
	return []string{CategoryWorldNews, CategorySports, CategoryBusiness, CategoryScienceTech}
}

// IsKnownCategory reports whether category belongs to the fixed label set
func IsKnownCategory(category string) bool {
	_, ok := categoryColors[category]
	return ok
}

// CategoryColor returns the presentation color for a category.
// Unrecognized categories are permitted and get DefaultCategoryColor.
func CategoryColor(category string) string {
	if color, ok := categoryColors[category]; ok {
		return color
	}
	return DefaultCategoryColor
}
