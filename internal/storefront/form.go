package storefront

import (
	"math"
	"strconv"
	"strings"

	"catalog/internal/models"
	"catalog/internal/services"
)

// Form field keys, matching the JSON names of the product body.
const (
	FieldName        = "name"
	FieldPrice       = "price"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldStock       = "stock"
	FieldImageURL    = "imageUrl"
)

// Draft is the product form: the raw text of each field and the errors the
// last validation found. Validation here is a pre-submission gate only; the
// server runs its own checks.
type Draft struct {
	Name        string
	Price       string
	Description string
	Category    string
	Stock       string
	ImageURL    string

	Errors map[string]string
}

// NewDraft returns an empty draft, or one prefilled from product for
// editing. A zero price or stock prefills as an empty field.
func NewDraft(product *models.Product) *Draft {
	d := &Draft{Errors: map[string]string{}}
	if product == nil {
		return d
	}

	d.Name = product.Name
	d.Description = product.Description
	d.Category = string(product.Category)
	d.ImageURL = product.ImageURL
	if product.Price != 0 {
		d.Price = strconv.FormatFloat(product.Price, 'f', -1, 64)
	}
	if product.Stock != 0 {
		d.Stock = strconv.Itoa(product.Stock)
	}
	return d
}

// Set changes one field and clears its error. Unknown fields are ignored.
func (d *Draft) Set(field, value string) {
	switch field {
	case FieldName:
		d.Name = value
	case FieldPrice:
		d.Price = value
	case FieldDescription:
		d.Description = value
	case FieldCategory:
		d.Category = value
	case FieldStock:
		d.Stock = value
	case FieldImageURL:
		d.ImageURL = value
	default:
		return
	}
	delete(d.Errors, field)
}

// Validate replaces Errors with the problems found in the current values
// and reports whether there are none.
func (d *Draft) Validate() bool {
	errs := make(map[string]string)

	if strings.TrimSpace(d.Name) == "" {
		errs[FieldName] = "Name is required"
	}

	if d.Price == "" {
		errs[FieldPrice] = "Price is required"
	} else if price, ok := parseNumber(d.Price); !ok || price < 0 {
		errs[FieldPrice] = "Price must be a positive number"
	}

	if strings.TrimSpace(d.Description) == "" {
		errs[FieldDescription] = "Description is required"
	}

	if d.Category == "" {
		errs[FieldCategory] = "Category is required"
	} else if !models.Category(d.Category).Valid() {
		errs[FieldCategory] = "Category must be one of the catalog categories"
	}

	if d.Stock != "" {
		if stock, err := strconv.Atoi(strings.TrimSpace(d.Stock)); err != nil || stock < 0 {
			errs[FieldStock] = "Stock must be a non-negative number"
		}
	}

	if strings.TrimSpace(d.ImageURL) == "" {
		errs[FieldImageURL] = "Image URL is required"
	}

	d.Errors = errs
	return len(errs) == 0
}

// Input converts a validated draft into the request body. An empty stock
// becomes 0.
func (d *Draft) Input() services.ProductInput {
	price, _ := parseNumber(d.Price)
	stock := 0
	if d.Stock != "" {
		stock, _ = strconv.Atoi(strings.TrimSpace(d.Stock))
	}
	return services.ProductInput{
		Name:        d.Name,
		Price:       &price,
		Description: d.Description,
		Category:    d.Category,
		Stock:       &stock,
		ImageURL:    d.ImageURL,
	}
}

func parseNumber(raw string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
