package entity

import "time"

// ReaderProfile is the reader extension of a User. Its ID is the reader_id
// that borrow records reference.
type ReaderProfile struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"reader_id"`
	UserID         uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	MembershipDate time.Time `gorm:"type:date;not null" json:"membership_date"`
	TotalBorrowed  int       `gorm:"not null;default:0" json:"total_borrowed"`

	// Relationships
	User          User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	BorrowRecords []BorrowRecord `gorm:"foreignKey:ReaderID" json:"borrow_records,omitempty"`
}

func (ReaderProfile) TableName() string {
	return "reader_profiles"
}
