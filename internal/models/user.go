package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionStatus string

const (
	SubscriptionFree    SubscriptionStatus = "free"
	SubscriptionPro     SubscriptionStatus = "pro"
	SubscriptionCreator SubscriptionStatus = "creator"
)

// Valid reports whether s is one of the known plans.
func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionFree, SubscriptionPro, SubscriptionCreator:
		return true
	}
	return false
}

type Usage struct {
	ImagesGenerated int `gorm:"not null;default:0" json:"imagesGenerated"`
}

type User struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Email              string             `gorm:"not null;size:255;uniqueIndex" json:"email"`
	PasswordHash       string             `gorm:"not null" json:"-"`
	StripeCustomerID   *string            `gorm:"size:255" json:"-"`
	SubscriptionStatus SubscriptionStatus `gorm:"size:20;not null;default:'free'" json:"subscriptionStatus"`
	CurrentUsage       Usage              `gorm:"embedded;embeddedPrefix:usage_" json:"currentUsage"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// BeforeCreate fills in the id and the default plan.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.SubscriptionStatus == "" {
		u.SubscriptionStatus = SubscriptionFree
	}
	return nil
}
