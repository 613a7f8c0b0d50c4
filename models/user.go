package models

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserRole coarsely separates who can touch the money from who tracks cargo.
type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleFinance    UserRole = "FINANCE"
	RoleOperations UserRole = "OPERATIONS"
)

type User struct {
	Id         string   `json:"id" gorm:"primaryKey"`
	FirstName  string   `json:"first_name" gorm:"not null"`
	LastName   string   `json:"last_name" gorm:"not null"`
	Password   []byte   `json:"-" gorm:"not null"`
	Email      string   `json:"email" gorm:"unique;not null"`
	Role       UserRole `json:"role" gorm:"type:VARCHAR(15);not null;default:'ADMIN'"`
	SchemaName string   `json:"-" gorm:"unique;not null"`
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	user.Id = uuid.NewString()
	return
}

func (user *User) SetPassword(password string) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), 12)
	user.Password = hashedPassword
}

func (user *User) ComparePassword(password string) error {
	return bcrypt.CompareHashAndPassword(user.Password, []byte(password))
}
