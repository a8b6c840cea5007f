package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductQuestion is a buyer question on a listing, optionally answered by
// the seller or an admin.
type ProductQuestion struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID  uuid.UUID  `gorm:"column:product_id;type:uuid;not null;index:product_questions_product_idx"`
	UserID     uuid.UUID  `gorm:"column:user_id;type:uuid;not null"`
	Question   string     `gorm:"column:question;not null"`
	Answer     *string    `gorm:"column:answer"`
	AnsweredBy *uuid.UUID `gorm:"column:answered_by;type:uuid"`
	AnsweredAt *time.Time `gorm:"column:answered_at"`

	IsSellerAnswer bool `gorm:"column:is_seller_answer;not null;default:false"`
	HelpfulCount   int  `gorm:"column:helpful_count;not null;default:0"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
