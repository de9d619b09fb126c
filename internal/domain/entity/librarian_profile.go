package entity

import "time"

// LibrarianProfile is the staff extension of a User. Admin users carry this
// profile too, refined further by AdminProfile.
type LibrarianProfile struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"librarian_id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	StaffID   string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"staff_id"`
	RoleLabel string    `gorm:"type:varchar(100)" json:"role_label,omitempty"`
	HireDate  time.Time `gorm:"type:date;not null" json:"hire_date"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (LibrarianProfile) TableName() string {
	return "librarian_profiles"
}
