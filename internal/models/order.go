package models

import (
	"time"

	"gorm.io/datatypes"
)

// StoredFile describes one uploaded document as persisted alongside the
// order row. Key is the storage backend's object key, URL the public
// download location.
type StoredFile struct {
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

func (f StoredFile) IsZero() bool {
	return f.Key == ""
}

type Order struct {
	BaseModel
	Title       string `gorm:"not null" json:"ordertitle"`
	Description string `gorm:"type:text;not null" json:"orderdescription"`

	Spacing  Choice       `gorm:"type:text;not null" json:"orderspace"`
	Deadline PricedChoice `gorm:"type:text;not null" json:"orderdeadline"`
	Language Choice       `gorm:"type:text;not null" json:"orderlanguage"`
	Format   Choice       `gorm:"type:text;not null" json:"orderformat"`

	Pages   int `gorm:"not null;default:0" json:"orderpages"`
	Sources int `gorm:"not null;default:0" json:"ordersources"`

	Status        Choice  `gorm:"type:text;not null" json:"orderstatus"`
	PaymentStatus Choice  `gorm:"type:text;not null" json:"orderpaymentstatus"`
	Price         float64 `gorm:"not null;default:0" json:"orderprice"`

	UserID   uint  `gorm:"not null;index" json:"user_id"`
	User     *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	WriterID *uint `gorm:"index" json:"writer_id,omitempty"`
	Writer   *User `gorm:"foreignKey:WriterID" json:"writer,omitempty"`

	LevelID     uint       `gorm:"not null" json:"level_id"`
	Level       *Level     `gorm:"foreignKey:LevelID" json:"level,omitempty"`
	PaperID     uint       `gorm:"not null" json:"paper_id"`
	Paper       *Paper     `gorm:"foreignKey:PaperID" json:"paper,omitempty"`
	PaperTypeID uint       `gorm:"not null" json:"paper_type_id"`
	PaperType   *PaperType `gorm:"foreignKey:PaperTypeID" json:"paper_type,omitempty"`

	// DefaultDocument and Documents hold the customer's assignment brief.
	// SubmittedDocument and SubmittedDocuments hold the writer's
	// deliverables, set when the order is submitted.
	DefaultDocument    datatypes.JSONType[StoredFile]  `json:"orderdefaultdocument"`
	Documents          datatypes.JSONSlice[StoredFile] `json:"orderdocuments"`
	SubmittedDocument  datatypes.JSONType[StoredFile]  `json:"orderdefaultuploaddocument"`
	SubmittedDocuments datatypes.JSONSlice[StoredFile] `json:"orderuploaddocuments"`
}

func (o *Order) IsPaid() bool {
	return o.PaymentStatus.ID == PaymentPaid.ID
}

func (o *Order) IsCompleted() bool {
	return o.Status.ID == StatusCompleted.ID
}

func (o *Order) HasWriter() bool {
	return o.WriterID != nil && *o.WriterID != 0
}
