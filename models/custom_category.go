package models

// CustomCategory is an ad hoc category label the admin has introduced.
// The unique index gives the registry set semantics: re-inserting an
// existing name is a no-op rather than a silent duplicate.
type CustomCategory struct {
	ID   uint   `gorm:"primaryKey" json:"-"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// TableName specifies the table name for the CustomCategory model.
func (CustomCategory) TableName() string {
	return "custom_categories"
}
