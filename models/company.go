package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is a transit agency (one tenant). Its identity fields are what
// gets snapshotted onto invoices at creation time.
type Company struct {
	Id          string `json:"id" gorm:"primaryKey"`
	CompanyName string `json:"company_name" gorm:"not null;unique"`
	Address     string `json:"address" gorm:"not null"`
	City        string `json:"city" gorm:"not null"`
	Country     string `json:"country" gorm:"not null;default:'Guinée'"`
	Phone       string `json:"phone"`
	// NIF is the Guinean tax identification number, RCCM the trade register.
	NIF  string `json:"nif"`
	RCCM string `json:"rccm"`

	UserId        string        `json:"-"`
	User          User          `json:"user" gorm:"foreignKey:UserId;references:Id"`
	PId           uint          `json:"-"`
	ContactPerson ContactPerson `json:"contact_person" gorm:"foreignKey:PId;references:Id"`
	SchemaName    string        `json:"-"`
}

func (company *Company) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	company.Id = uuid.NewString()
	return
}
