package models

import (
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// Page is a static site page with a derived URL slug.
type Page struct {
	BaseModel
	Name        string `gorm:"not null" json:"pagename"`
	Description string `gorm:"type:text;not null" json:"pagedescription"`
	Link        string `json:"pagelink"`
}

var slugStrip = regexp.MustCompile(`[^a-z0-9-]`)

// BeforeSave keeps the slug in sync with the page name.
func (p *Page) BeforeSave(tx *gorm.DB) error {
	if p.Name != "" {
		slug := strings.ToLower(p.Name)
		slug = strings.Join(strings.Fields(slug), "-")
		p.Link = slugStrip.ReplaceAllString(slug, "")
	}
	return nil
}

type Post struct {
	BaseModel
	Name        string `gorm:"not null" json:"postname"`
	Description string `gorm:"type:text;not null" json:"postdescription"`
}

type Essay struct {
	BaseModel
	Name        string `gorm:"not null" json:"essayname"`
	Description string `gorm:"type:text;not null" json:"essaydescription"`
}

// Phase is one step of the published how-it-works flow.
type Phase struct {
	BaseModel
	Name        string `gorm:"not null" json:"phasename"`
	Description string `gorm:"type:text;not null" json:"phasedescription"`
}

// Point is one published selling point.
type Point struct {
	BaseModel
	Name        string `gorm:"not null" json:"pointname"`
	Description string `gorm:"type:text;not null" json:"pointdescription"`
}
