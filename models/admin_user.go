package models

// AdminUser holds the single admin credential row. The password is
// stored as a bcrypt hash; the management flow only ever reads this
// table.
type AdminUser struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
}

// TableName specifies the table name for the AdminUser model.
func (AdminUser) TableName() string {
	return "admin_users"
}
