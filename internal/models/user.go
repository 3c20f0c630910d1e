package models

import (
	"strings"
	"time"
)

const (
	CapabilityAdmin    = "admin"
	CapabilityCustomer = "customer"
	CapabilityWriter   = "writer"
)

type User struct {
	BaseModel
	FirstName    string `gorm:"not null" json:"firstname"`
	LastName     string `gorm:"not null" json:"lastname"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	MobileNumber string `gorm:"uniqueIndex;not null" json:"mobilenumber"`
	Password     string `gorm:"not null" json:"-"`

	IsActive   bool `gorm:"default:false" json:"isactive"`
	IsLocked   bool `gorm:"default:false" json:"islocked"`
	IsAdmin    bool `gorm:"default:false" json:"isadmin"`
	IsCustomer bool `gorm:"default:false" json:"iscustomer"`
	IsWriter   bool `gorm:"default:false" json:"iswriter"`

	// One-time tokens are stored hashed; the plain value only ever
	// leaves the system inside an email link.
	ActivationToken  *string    `json:"-"`
	ActivationExpire *time.Time `json:"-"`

	ResetPasswordToken  *string    `json:"-"`
	ResetPasswordExpire *time.Time `json:"-"`
	ResetRequestCount   int        `gorm:"default:0" json:"-"`
	LastResetRequestAt  *time.Time `json:"-"`

	Orders []Order `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Capabilities derives the user's capability set from its role flags.
func (u *User) Capabilities() []string {
	var caps []string
	if u.IsAdmin {
		caps = append(caps, CapabilityAdmin)
	}
	if u.IsCustomer {
		caps = append(caps, CapabilityCustomer)
	}
	if u.IsWriter {
		caps = append(caps, CapabilityWriter)
	}
	return caps
}

func (u *User) HasCapability(capability string) bool {
	switch capability {
	case CapabilityAdmin:
		return u.IsAdmin
	case CapabilityCustomer:
		return u.IsCustomer
	case CapabilityWriter:
		return u.IsWriter
	default:
		return false
	}
}
