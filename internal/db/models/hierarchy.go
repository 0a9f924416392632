package models

// Organisation is one node of the host's organisation hierarchy.
type Organisation struct {
	// ID is the unique identifier for the organisation.
	ID uint64 `gorm:"primaryKey"`
	// FullName is the display name of the organisation.
	FullName string `gorm:"size:255;not null"`
}

// TableName specifies the database table name for the Organisation model.
func (Organisation) TableName() string {
	return "organisations"
}

// Position is one node of the host's position hierarchy.
type Position struct {
	// ID is the unique identifier for the position.
	ID uint64 `gorm:"primaryKey"`
	// FullName is the display name of the position.
	FullName string `gorm:"size:255;not null"`
}

// TableName specifies the database table name for the Position model.
func (Position) TableName() string {
	return "positions"
}

// PositionAssignment links a user to an organisation, position and
// manager. Only the primary assignment is considered by the
// primary-position sort rule.
type PositionAssignment struct {
	// ID is the unique identifier for the assignment.
	ID uint64 `gorm:"primaryKey"`
	// UserID is the user the assignment belongs to.
	UserID uint64 `gorm:"index;not null"`
	// OrganisationID is the assigned organisation (0 when unset).
	OrganisationID uint64
	// PositionID is the assigned position (0 when unset).
	PositionID uint64
	// ManagerID is the assigned manager's user id (0 when unset).
	ManagerID uint64
	// Primary marks the user's primary assignment.
	Primary bool `gorm:"index"`
}

// TableName specifies the database table name for the PositionAssignment model.
func (PositionAssignment) TableName() string {
	return "position_assignments"
}
