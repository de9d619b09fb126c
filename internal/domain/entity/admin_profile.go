package entity

// AdminProfile refines a librarian into an admin. A user with the admin role
// must carry both a LibrarianProfile and an AdminProfile.
type AdminProfile struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"admin_id"`
	UserID         uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	PrivilegeLevel string `gorm:"type:varchar(50);not null" json:"privilege_level"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AdminProfile) TableName() string {
	return "admin_profiles"
}
