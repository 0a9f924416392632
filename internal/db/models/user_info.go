package models

// UserInfoField describes a custom user attribute defined by the host.
type UserInfoField struct {
	// ID is the unique identifier for the field.
	ID uint64 `gorm:"primaryKey"`
	// Name is the display name of the field.
	Name string `gorm:"size:255;not null"`
}

// TableName specifies the database table name for the UserInfoField model.
func (UserInfoField) TableName() string {
	return "user_info_fields"
}

// UserInfoData stores one user's value for a custom field.
type UserInfoData struct {
	// ID is the unique identifier for the row.
	ID uint64 `gorm:"primaryKey"`
	// FieldID is the custom field this value belongs to.
	FieldID uint64 `gorm:"index:idx_info_field_user;not null"`
	// UserID is the user this value belongs to.
	UserID uint64 `gorm:"index:idx_info_field_user;not null"`
	// Data is the stored value.
	Data string `gorm:"size:255"`
}

// TableName specifies the database table name for the UserInfoData model.
func (UserInfoData) TableName() string {
	return "user_info_data"
}
