package models

// Category is one of the fixed catalog category labels.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryClothing    Category = "Clothing"
	CategoryHomeKitchen Category = "Home & Kitchen"
	CategoryBooks       Category = "Books"
	CategoryToys        Category = "Toys"
	CategorySports      Category = "Sports"
	CategoryBeauty      Category = "Beauty"
	CategoryHealth      Category = "Health"
	CategoryAutomotive  Category = "Automotive"
	CategoryAccessories Category = "Accessories"
	CategoryFitness     Category = "Fitness"
	CategorySportswear  Category = "Sportswear"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategoryHomeKitchen,
	CategoryBooks,
	CategoryToys,
	CategorySports,
	CategoryBeauty,
	CategoryHealth,
	CategoryAutomotive,
	CategoryAccessories,
	CategoryFitness,
	CategorySportswear,
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
