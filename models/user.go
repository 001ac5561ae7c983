package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email          string `gorm:"uniqueIndex;not null"`
	Password       string `gorm:"not null"`
	FirstName      string
	LastName       string
	Sex            string
	Birthday       time.Time
	Height         float64 // cm
	Weight         float64 // kg
	ProfilePicture string
	MFAEnabled     bool
	MFACode        string
	ResetToken     string
	ResetTokenExp  time.Time
	Onboarded      bool
	Disabled       bool
}
