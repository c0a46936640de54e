package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder plus the body profile the planners read.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email       string         `gorm:"not null;size:120;uniqueIndex" json:"email"`
	Password    string         `gorm:"not null" json:"-"`
	FirstName   string         `gorm:"size:50;not null" json:"first_name"`
	LastName    string         `gorm:"size:50;not null" json:"last_name"`
	Age         *int           `json:"age"`
	Weight      *float64       `json:"weight"`
	Height      *float64       `json:"height"`
	Gender      string         `gorm:"size:10" json:"gender"`
	FitnessGoal string         `gorm:"size:50" json:"fitness_goal"`
	Role        string         `gorm:"size:20;default:'user'" json:"role"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
