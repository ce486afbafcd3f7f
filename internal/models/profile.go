package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Column limits shared by the schema and request validation
const (
	MaxNameLength  = 20
	MaxEmailLength = 20
)

// Profile represents a person record managed by the API
type Profile struct {
	ID        uint   `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	FirstName string `json:"first_name" gorm:"column:first_name;type:varchar(20);not null"`
	LastName  string `json:"last_name" gorm:"column:last_name;type:varchar(20);not null"`
	Email     string `json:"email" gorm:"column:email;type:varchar(20);uniqueIndex:idx_profiles_email;not null"`
	Age       int    `json:"age" gorm:"column:age;not null"`
}

// TableName pins the table name regardless of gorm naming strategy
func (Profile) TableName() string {
	return "profiles"
}

// NewProfile creates a profile that has not been persisted yet
func NewProfile(firstName, lastName, email string, age int) *Profile {
	return &Profile{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Age:       age,
	}
}

// Validate checks that every column holds a storable value
func (p *Profile) Validate() error {
	if err := ValidateRequired(p.FirstName, "first_name"); err != nil {
		return err
	}
	if err := ValidateRequired(p.LastName, "last_name"); err != nil {
		return err
	}
	if err := ValidateRequired(p.Email, "email"); err != nil {
		return err
	}
	if err := ValidateMaxLength(p.FirstName, "first_name", MaxNameLength); err != nil {
		return err
	}
	if err := ValidateMaxLength(p.LastName, "last_name", MaxNameLength); err != nil {
		return err
	}
	return ValidateMaxLength(p.Email, "email", MaxEmailLength)
}

// ApplyContactUpdate overwrites the mutable fields. Names stay as created.
func (p *Profile) ApplyContactUpdate(email string, age int) {
	p.Email = email
	p.Age = age
}

// GetDisplayName returns "First Last"
func (p *Profile) GetDisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// String mirrors the record's log representation
func (p *Profile) String() string {
	return fmt.Sprintf("Name : %s, Age: %d", p.FirstName, p.Age)
}

// ValidateRequired checks that a required string field is not empty
func ValidateRequired(value, fieldName string) error {
	if value == "" {
		return &ValidationError{
			Field:   fieldName,
			Tag:     "required",
			Message: fieldName + " is required",
			Value:   value,
		}
	}
	return nil
}

// ValidateMaxLength checks a string against a character limit
func ValidateMaxLength(value, fieldName string, maxLength int) error {
	if utf8.RuneCountInString(value) > maxLength {
		return &ValidationError{
			Field:   fieldName,
			Tag:     "max",
			Message: fmt.Sprintf("%s cannot exceed %d characters", fieldName, maxLength),
			Value:   value,
		}
	}
	return nil
}
