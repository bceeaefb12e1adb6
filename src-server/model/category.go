package model

type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
	CategorySocial   Category = "social"
	CategoryTravel   Category = "travel"
	CategoryHoliday  Category = "holiday"
)

// DefaultCategory is what unrecognized values fold into.
const DefaultCategory = CategoryWork

var Categories = []Category{
	CategoryWork,
	CategoryPersonal,
	CategoryHealth,
	CategorySocial,
	CategoryTravel,
	CategoryHoliday,
}

func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Normalize returns c, or the default category when c is not part of
// the enumerated set. Unknown values are never rejected.
func (c Category) Normalize() Category {
	if c.IsValid() {
		return c
	}
	return DefaultCategory
}

// Color is the display hue clients associate with each category.
func (c Category) Color() string {
	switch c {
	case CategoryWork:
		return "blue"
	case CategoryPersonal:
		return "green"
	case CategoryHealth:
		return "yellow"
	case CategorySocial:
		return "purple"
	case CategoryTravel:
		return "orange"
	case CategoryHoliday:
		return "red"
	default:
		return CategoryWork.Color()
	}
}
