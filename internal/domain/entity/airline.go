package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airline represents an airline reference entity, used as a fallback when
// the provider record lacks the airline name.
type Airline struct {
	ID        uint
	ICAO      string
	IATA      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
