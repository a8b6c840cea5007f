package questions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	pkgerrors "github.com/rkhandelwal/tradebazaar-backend/pkg/errors"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/pagination"
)

// QuestionDTO is the question payload returned to clients.
type QuestionDTO struct {
	ID             uuid.UUID  `json:"id"`
	ProductID      uuid.UUID  `json:"product_id"`
	UserID         uuid.UUID  `json:"user_id"`
	Question       string     `json:"question"`
	Answer         *string    `json:"answer,omitempty"`
	AnsweredBy     *uuid.UUID `json:"answered_by,omitempty"`
	AnsweredAt     *time.Time `json:"answered_at,omitempty"`
	IsSellerAnswer bool       `json:"is_seller_answer"`
	HelpfulCount   int        `json:"helpful_count"`
	CreatedAt      time.Time  `json:"created_at"`
}

// QuestionPageDTO pairs a question page with pagination metadata.
type QuestionPageDTO struct {
	Questions  []QuestionDTO   `json:"questions"`
	Pagination pagination.Page `json:"pagination"`
}

// Service exposes Q&A operations on product listings.
type Service interface {
	AskQuestion(ctx context.Context, userID, productID uuid.UUID, question string) (*QuestionDTO, error)
	AnswerQuestion(ctx context.Context, responderID uuid.UUID, isAdmin bool, questionID uuid.UUID, answer string) (*QuestionDTO, error)
	ListQuestions(ctx context.Context, productID uuid.UUID, answeredOnly bool, params pagination.Params) (*QuestionPageDTO, error)
	Vote(ctx context.Context, questionID uuid.UUID) error
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo     *Repository
	products productLoader
}

// NewService constructs a question service instance.
func NewService(repo *Repository, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("question repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo, products: products}, nil
}

// AskQuestion records a buyer question on an existing listing.
func (s *service) AskQuestion(ctx context.Context, userID, productID uuid.UUID, question string) (*QuestionDTO, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "question is required")
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	row := &models.ProductQuestion{
		ProductID: productID,
		UserID:    userID,
		Question:  question,
	}
	if _, err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create question")
	}
	dto := newQuestionDTO(row)
	return &dto, nil
}

// AnswerQuestion attaches an answer. The product's seller or an admin may
// answer; answering again overwrites the previous answer.
func (s *service) AnswerQuestion(ctx context.Context, responderID uuid.UUID, isAdmin bool, questionID uuid.UUID, answer string) (*QuestionDTO, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "answer is required")
	}

	question, err := s.repo.FindByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "question not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load question")
	}

	prod, err := s.products.FindByID(ctx, question.ProductID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !isAdmin && prod.SellerID != responderID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "question does not belong to seller's product")
	}

	now := time.Now().UTC()
	question.Answer = &answer
	question.AnsweredBy = &responderID
	question.AnsweredAt = &now
	question.IsSellerAnswer = prod.SellerID == responderID
	if _, err := s.repo.Update(ctx, question); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save answer")
	}
	dto := newQuestionDTO(question)
	return &dto, nil
}

// Vote bumps the question's helpful counter.
func (s *service) Vote(ctx context.Context, questionID uuid.UUID) error {
	if err := s.repo.AddHelpfulVote(ctx, questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "question not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record vote")
	}
	return nil
}

// ListQuestions pages a product's questions, newest first.
func (s *service) ListQuestions(ctx context.Context, productID uuid.UUID, answeredOnly bool, params pagination.Params) (*QuestionPageDTO, error) {
	rows, page, err := s.repo.ListByProduct(ctx, productID, answeredOnly, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list questions")
	}
	dtos := make([]QuestionDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, newQuestionDTO(&rows[i]))
	}
	return &QuestionPageDTO{Questions: dtos, Pagination: page}, nil
}

func newQuestionDTO(q *models.ProductQuestion) QuestionDTO {
	return QuestionDTO{
		ID:             q.ID,
		ProductID:      q.ProductID,
		UserID:         q.UserID,
		Question:       q.Question,
		Answer:         q.Answer,
		AnsweredBy:     q.AnsweredBy,
		AnsweredAt:     q.AnsweredAt,
		IsSellerAnswer: q.IsSellerAnswer,
		HelpfulCount:   q.HelpfulCount,
		CreatedAt:      q.CreatedAt,
	}
}
