package product

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	pkgerrors "github.com/rkhandelwal/tradebazaar-backend/pkg/errors"
)

const suggestionLimit = 10

// CategoryDTO is one catalog taxonomy node.
type CategoryDTO struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

// ListCategories returns the full taxonomy, alphabetical.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).
		Error
	return rows, err
}

// ListBrands returns the distinct brands with at least one live listing.
func (r *Repository) ListBrands(ctx context.Context) ([]string, error) {
	var brands []string
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("is_active = ?", true).
		Where("approval_status = ?", enums.ApprovalStatusApproved).
		Where("brand <> ''").
		Distinct("brand").
		Order("brand ASC").
		Pluck("brand", &brands).
		Error
	return brands, err
}

// SearchSuggestions returns distinct titles and brands from live listings
// that start with the term, titles first.
func (r *Repository) SearchSuggestions(ctx context.Context, term string, limit int) ([]string, error) {
	prefix := strings.ToLower(strings.TrimSpace(term)) + "%"
	var suggestions []string
	err := r.db.WithContext(ctx).Raw(`
SELECT suggestion FROM (
  SELECT DISTINCT title AS suggestion, 0 AS rank FROM products
  WHERE is_active = true AND approval_status = ? AND LOWER(title) LIKE ?
  UNION
  SELECT DISTINCT brand AS suggestion, 1 AS rank FROM products
  WHERE is_active = true AND approval_status = ? AND brand <> '' AND LOWER(brand) LIKE ?
) matches
ORDER BY rank ASC, suggestion ASC
LIMIT ?`,
		enums.ApprovalStatusApproved, prefix,
		enums.ApprovalStatusApproved, prefix,
		limit).
		Scan(&suggestions).
		Error
	return suggestions, err
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	dtos := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, CategoryDTO{
			ID:       rows[i].ID,
			Name:     rows[i].Name,
			Slug:     rows[i].Slug,
			ParentID: rows[i].ParentID,
		})
	}
	return dtos, nil
}

func (s *service) ListBrands(ctx context.Context) ([]string, error) {
	brands, err := s.repo.ListBrands(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list brands")
	}
	return brands, nil
}

// SearchSuggestions autocompletes a search box. Terms shorter than two
// characters return nothing rather than the whole catalog.
func (s *service) SearchSuggestions(ctx context.Context, term string) ([]string, error) {
	if len(strings.TrimSpace(term)) < 2 {
		return []string{}, nil
	}
	suggestions, err := s.repo.SearchSuggestions(ctx, term, suggestionLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search suggestions")
	}
	return suggestions, nil
}
