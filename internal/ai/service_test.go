package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/rkhandelwal/tradebazaar-backend/internal/settings"
	pkgerrors "github.com/rkhandelwal/tradebazaar-backend/pkg/errors"
)

type staticProvider struct {
	name string
}

func (p staticProvider) AI() (settings.AISettings, error) {
	return settings.AISettings{Provider: p.name}, nil
}

func TestGenerateContent(t *testing.T) {
	svc, err := NewService(staticProvider{name: "mock"})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	content, err := svc.GenerateContent(context.Background(), GenerateContentInput{
		Title:    "Copper Bottle",
		Category: "Kitchenware",
		Keywords: []string{"ayurvedic", " hydration "},
	})
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	if content.Provider != "mock" {
		t.Fatalf("provider = %q", content.Provider)
	}
	if !strings.Contains(content.Description, "Copper Bottle") {
		t.Fatalf("description missing title: %q", content.Description)
	}
	want := []string{"copper-bottle", "kitchenware", "ayurvedic", "hydration"}
	if len(content.SEOTags) != len(want) {
		t.Fatalf("tags = %v, want %v", content.SEOTags, want)
	}
	for i, tag := range want {
		if content.SEOTags[i] != tag {
			t.Fatalf("tag[%d] = %q, want %q", i, content.SEOTags[i], tag)
		}
	}
	if len(content.SocialPosts) != 2 {
		t.Fatalf("expected two social posts, got %d", len(content.SocialPosts))
	}
}

func TestGenerateContentRequiresTitle(t *testing.T) {
	svc, _ := NewService(staticProvider{name: "mock"})

	_, err := svc.GenerateContent(context.Background(), GenerateContentInput{Title: "  "})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGenerateImageDefaultsProvider(t *testing.T) {
	svc, _ := NewService(staticProvider{name: ""})

	image, err := svc.GenerateImage(context.Background(), GenerateImageInput{Prompt: "Copper bottle on a table"})
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if image.Provider != "mock" {
		t.Fatalf("provider = %q, want mock fallback", image.Provider)
	}
	if image.URL != "https://placeholder.tradebazaar.dev/copper-bottle-on-a-table.png" {
		t.Fatalf("url = %q", image.URL)
	}
}
