package services

import (
	"reflect"
	"strings"

	"catalog/internal/models"

	"github.com/go-playground/validator/v10"
)

// ProductInput is the request body for create and update. Numeric fields are
// pointers so an absent value can be told apart from zero.
type ProductInput struct {
	Name        string   `json:"name" validate:"required"`
	Price       *float64 `json:"price"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Stock       *int     `json:"stock"`
	ImageURL    string   `json:"imageUrl" validate:"required"`
}

// Fields converts the input into a complete editable field set. Absent
// numbers become zero.
func (in ProductInput) Fields() models.ProductFields {
	fields := models.ProductFields{
		Name:        in.Name,
		Description: in.Description,
		Category:    models.Category(in.Category),
		ImageURL:    in.ImageURL,
	}
	if in.Price != nil {
		fields.Price = *in.Price
	}
	if in.Stock != nil {
		fields.Stock = *in.Stock
	}
	return fields
}

// newValidator returns a validator that reports fields by their JSON names
// and knows the catalog category set.
func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for an empty tag or a nil function.
	_ = validate.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.Category(fl.Field().String()).Valid()
	})
	return validate
}

// invariantRules holds the store invariants checked on every write. An empty
// category passes here; create rejects it earlier as a missing field.
type invariantRules struct {
	Price    float64 `json:"price" validate:"gte=0"`
	Stock    int     `json:"stock" validate:"gte=0"`
	Category string  `json:"category" validate:"omitempty,category"`
}

func fieldMessages(err error) map[string]string {
	messages := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return messages
	}
	for _, e := range validationErrors {
		messages[e.Field()] = fieldMessage(e)
	}
	return messages
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must not be negative"
	case "category":
		return "must be one of the catalog categories"
	default:
		return "failed on the '" + e.Tag() + "' rule"
	}
}
