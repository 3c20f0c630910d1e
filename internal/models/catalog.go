package models

// Level is an academic level (High School, Undergraduate, ...). Its
// PricePerPage drives the base component of an order price.
type Level struct {
	BaseModel
	Name         string  `gorm:"not null" json:"levelname"`
	Description  string  `gorm:"type:text;not null" json:"leveldescription"`
	PricePerPage float64 `gorm:"not null;default:0" json:"priceperpage"`

	Papers []Paper `gorm:"many2many:paper_levels" json:"papers,omitempty"`
}

// Paper is a paper category (Essay, Thesis, ...).
type Paper struct {
	BaseModel
	Name        string `gorm:"not null" json:"papername"`
	Description string `gorm:"type:text;not null" json:"paperdescription"`

	Levels     []Level     `gorm:"many2many:paper_levels" json:"levels,omitempty"`
	PaperTypes []PaperType `gorm:"foreignKey:PaperID" json:"papertypes,omitempty"`
}

// PaperType is a concrete variant under a Paper, with its own per-page
// surcharge.
type PaperType struct {
	BaseModel
	Name         string  `gorm:"not null" json:"papertypename"`
	Description  string  `gorm:"type:text;not null" json:"papertypedescription"`
	PricePerPage float64 `gorm:"not null;default:0" json:"priceperpage"`

	PaperID *uint  `json:"paper_id,omitempty"`
	Paper   *Paper `gorm:"foreignKey:PaperID" json:"paper,omitempty"`
}
