package models

// Ingredient is static reference data; the (name, measurement_unit)
// pair is unique so "flour (g)" and "flour (kg)" stay distinct rows.
type Ingredient struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"not null;size:200;uniqueIndex:idx_name_unit" json:"name"`
	MeasurementUnit string `gorm:"not null;size:200;uniqueIndex:idx_name_unit" json:"measurement_unit"`
}
