package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Scene is one narrative unit of a project. It only exists inside its
// project's scene list; the id is chosen by the client.
type Scene struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
	Dialogue    string `json:"dialogue,omitempty"`
	ImagePrompt string `json:"imagePrompt,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type Project struct {
	ID          uuid.UUID                  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID                  `gorm:"type:uuid;not null;index" json:"userId"`
	Title       string                     `gorm:"not null" json:"title"`
	ContentType string                     `gorm:"size:100;not null" json:"contentType"`
	Scenes      datatypes.JSONSlice[Scene] `gorm:"not null" json:"scenes"`
	CreatedAt   time.Time                  `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time                  `json:"updatedAt"`
	User        User                       `gorm:"foreignKey:UserID" json:"-"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Scenes == nil {
		p.Scenes = datatypes.JSONSlice[Scene]{}
	}
	return nil
}

// AfterFind keeps the scene list serializing as [] rather than null.
func (p *Project) AfterFind(tx *gorm.DB) error {
	if p.Scenes == nil {
		p.Scenes = datatypes.JSONSlice[Scene]{}
	}
	return nil
}
