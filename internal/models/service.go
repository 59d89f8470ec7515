package models

// Service is a bookable catalogue entry (haircut, beard trim, ...).
// The booking engine treats services as read-only: duration and price are
// copied onto appointment items at booking time.
type Service struct {
	BaseModel
	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	Duration    int     `gorm:"not null" json:"duration"` // minutes, > 0
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string  `gorm:"size:50;default:'General'" json:"category"`
	IsActive    bool    `gorm:"default:true" json:"isActive"`
}
