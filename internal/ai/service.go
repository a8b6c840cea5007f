package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rkhandelwal/tradebazaar-backend/internal/settings"
	pkgerrors "github.com/rkhandelwal/tradebazaar-backend/pkg/errors"
)

// GenerateContentInput describes the product the copy is generated for.
type GenerateContentInput struct {
	Title    string   `json:"title" validate:"required"`
	Category string   `json:"category,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// GeneratedContent is the mock copywriting payload.
type GeneratedContent struct {
	Provider    string   `json:"provider"`
	Description string   `json:"description"`
	SEOTags     []string `json:"seo_tags"`
	SocialPosts []string `json:"social_posts"`
}

// GenerateImageInput describes the requested render.
type GenerateImageInput struct {
	Prompt string `json:"prompt" validate:"required"`
	Style  string `json:"style,omitempty"`
}

// GeneratedImage is the mock image payload; the URL points at a
// deterministic placeholder.
type GeneratedImage struct {
	Provider    string    `json:"provider"`
	URL         string    `json:"url"`
	Prompt      string    `json:"prompt"`
	GeneratedAt time.Time `json:"generated_at"`
}

type providerSource interface {
	AI() (settings.AISettings, error)
}

// Service produces mock AI content. The provider name from settings is
// echoed into every payload so swapping in a real backend changes nothing
// for clients.
type Service struct {
	settings providerSource
}

// NewService builds the AI stub service.
func NewService(settings providerSource) (*Service, error) {
	if settings == nil {
		return nil, fmt.Errorf("settings store required")
	}
	return &Service{settings: settings}, nil
}

// GenerateContent returns deterministic description, tags, and posts.
func (s *Service) GenerateContent(ctx context.Context, input GenerateContentInput) (*GeneratedContent, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}

	provider := s.providerName()

	description := fmt.Sprintf(
		"%s is a quality product built for everyday use. Crafted with care and backed by our marketplace guarantee.",
		title,
	)
	if input.Category != "" {
		description = fmt.Sprintf(
			"%s is a standout choice in %s. Crafted with care and backed by our marketplace guarantee.",
			title, input.Category,
		)
	}

	tags := []string{slugify(title)}
	if input.Category != "" {
		tags = append(tags, slugify(input.Category))
	}
	for _, keyword := range input.Keywords {
		if trimmed := strings.TrimSpace(keyword); trimmed != "" {
			tags = append(tags, slugify(trimmed))
		}
	}

	posts := []string{
		fmt.Sprintf("Now available: %s. Shop it today!", title),
		fmt.Sprintf("Why buyers love %s - quality you can count on.", title),
	}

	return &GeneratedContent{
		Provider:    provider,
		Description: description,
		SEOTags:     tags,
		SocialPosts: posts,
	}, nil
}

// GenerateImage returns a placeholder render for the prompt.
func (s *Service) GenerateImage(ctx context.Context, input GenerateImageInput) (*GeneratedImage, error) {
	prompt := strings.TrimSpace(input.Prompt)
	if prompt == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "prompt is required")
	}

	return &GeneratedImage{
		Provider:    s.providerName(),
		URL:         fmt.Sprintf("https://placeholder.tradebazaar.dev/%s.png", slugify(prompt)),
		Prompt:      prompt,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func (s *Service) providerName() string {
	view, err := s.settings.AI()
	if err != nil || strings.TrimSpace(view.Provider) == "" {
		return "mock"
	}
	return view.Provider
}

func slugify(value string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(value) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
