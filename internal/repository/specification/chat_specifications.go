package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByChatSessionID filters by chat session
type ByChatSessionID struct {
	SessionID uuid.UUID
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.SessionID)
}

// ByProductRef filters cart rows by catalog image reference
type ByProductRef struct {
	ProductRef string
}

func (s ByProductRef) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("product_ref = ?", s.ProductRef)
}

// ByImageID filters products by catalog image id
type ByImageID struct {
	ImageID string
}

func (s ByImageID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("image_id = ?", s.ImageID)
}

// ByCategory filters products by category
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}
