package models

import (
	"encoding/json"
	"time"
)

// ProductFields is the editable part of a product. Updates always carry the
// complete set; there is no partial patch.
type ProductFields struct {
	Name        string   `json:"name" bson:"name" gorm:"type:varchar(255);not null"`
	Price       float64  `json:"price" bson:"price" gorm:"not null"`
	Description string   `json:"description" bson:"description" gorm:"type:text;not null"`
	Category    Category `json:"category" bson:"category" gorm:"type:varchar(64);not null"`
	Stock       int      `json:"stock" bson:"stock" gorm:"not null;default:0"`
	ImageURL    string   `json:"imageUrl" bson:"imageUrl" gorm:"type:text;not null"`
}

// Product represents a product in the catalog.
type Product struct {
	ID string `json:"_id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`

	ProductFields `bson:",inline"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// UnmarshalJSON accepts the identifier under either "_id" or "id".
func (p *Product) UnmarshalJSON(data []byte) error {
	type product Product
	aux := struct {
		*product
		AltID string `json:"id"`
	}{product: (*product)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = aux.AltID
	}
	return nil
}
