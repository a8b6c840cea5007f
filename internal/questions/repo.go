package questions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/pagination"
)

// Repository encapsulates product question persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a question repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a question row.
func (r *Repository) Create(ctx context.Context, question *models.ProductQuestion) (*models.ProductQuestion, error) {
	if err := r.db.WithContext(ctx).Create(question).Error; err != nil {
		return nil, err
	}
	return question, nil
}

// FindByID loads one question.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.ProductQuestion, error) {
	var question models.ProductQuestion
	if err := r.db.WithContext(ctx).First(&question, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// Update saves the full question row.
func (r *Repository) Update(ctx context.Context, question *models.ProductQuestion) (*models.ProductQuestion, error) {
	if err := r.db.WithContext(ctx).Save(question).Error; err != nil {
		return nil, err
	}
	return question, nil
}

// AddHelpfulVote bumps the helpful counter in place.
func (r *Repository) AddHelpfulVote(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProductQuestion{}).
		Where("id = ?", id).
		UpdateColumn("helpful_count", gorm.Expr("helpful_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByProduct pages a product's questions, newest first.
func (r *Repository) ListByProduct(ctx context.Context, productID uuid.UUID, answeredOnly bool, params pagination.Params) ([]models.ProductQuestion, pagination.Page, error) {
	params = params.Normalize()

	qb := r.db.WithContext(ctx).
		Model(&models.ProductQuestion{}).
		Where("product_id = ?", productID)
	if answeredOnly {
		qb = qb.Where("answer IS NOT NULL")
	}

	var total int64
	if err := qb.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, pagination.Page{}, err
	}

	var rows []models.ProductQuestion
	err := qb.
		Order("created_at DESC").
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, pagination.Page{}, err
	}
	return rows, pagination.PageFor(params, total), nil
}
