package entity

import "time"

// User represents the centralized identity table. Role-specific data lives in
// the extension tables (reader_profiles, librarian_profiles, admin_profiles).
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleID    int       `gorm:"not null;index" json:"role_id"`
	Username  string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role             Role              `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	ReaderProfile    *ReaderProfile    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"reader_profile,omitempty"`
	LibrarianProfile *LibrarianProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"librarian_profile,omitempty"`
	AdminProfile     *AdminProfile     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"admin_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}
