package models

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrSingletonExists rejects inserts into a single-row table that
// already holds its record.
var ErrSingletonExists = errors.New("record already exists")

// Company is a singleton profile record. The repository upserts it, and
// the create hook keeps the table single-row even for direct inserts.
type Company struct {
	BaseModel
	Name         string `gorm:"not null" json:"companyname"`
	Email        string `gorm:"not null" json:"companyemail"`
	Phone        string `gorm:"not null" json:"companyphone"`
	TwitterLink  string `json:"companytwitterlink"`
	FacebookLink string `json:"companyfacebooklink"`

	Logo   datatypes.JSONType[StoredFile]  `json:"logo"`
	Images datatypes.JSONSlice[StoredFile] `json:"images"`
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	return rejectSecondRow(tx, &Company{})
}

// Achievement is the singleton public-stats record.
type Achievement struct {
	BaseModel
	OrdersCompleted   int `json:"orderscompleted"`
	SatisfiedClients  int `json:"satisfiedclients"`
	PositiveFeedbacks int `json:"positivefeedbacks"`
	FreebiesReleased  int `json:"freebiesreleased"`
}

func (a *Achievement) BeforeCreate(tx *gorm.DB) error {
	return rejectSecondRow(tx, &Achievement{})
}

func rejectSecondRow(tx *gorm.DB, model interface{}) error {
	var count int64
	if err := tx.Model(model).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrSingletonExists
	}
	return nil
}
