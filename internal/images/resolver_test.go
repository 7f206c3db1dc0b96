package images

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hammamikhairi/forager/internal/domain"
	"github.com/hammamikhairi/forager/internal/logger"
)

func img(width, id int) domain.RecipeImage {
	return domain.RecipeImage{URL: "https://img.example.com/pic.jpg", Width: width, ID: id}
}

func TestNearest(t *testing.T) {
	tests := []struct {
		name   string
		images []domain.RecipeImage
		target int
		wantID int
		wantOK bool
	}{
		{"empty set", nil, 700, 0, false},
		{"single image", []domain.RecipeImage{img(50, 1)}, 700, 1, true},
		{"picks closest below", []domain.RecipeImage{img(400, 1), img(650, 2), img(1500, 3)}, 700, 2, true},
		{"picks closest above", []domain.RecipeImage{img(100, 1), img(770, 2)}, 700, 2, true},
		{"exact match wins", []domain.RecipeImage{img(400, 1), img(700, 2), img(710, 3)}, 700, 2, true},
		{"tie keeps first occurrence", []domain.RecipeImage{img(650, 1), img(750, 2)}, 700, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Nearest(tt.images, tt.target)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got.ID != tt.wantID {
				t.Fatalf("picked image %d, want %d", got.ID, tt.wantID)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	payload := []byte("jpeg-bytes")
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write(payload)
	}))
	defer srv.Close()

	log := logger.New(logger.LevelOff, nil)
	r := NewResolver(srv.URL+"/", log)

	data, err := r.Resolve(context.Background(), []domain.RecipeImage{
		{URL: "https://img.example.com/dish.jpg", Width: 700, ID: 1},
	}, DefaultTargetWidth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Fatalf("unexpected payload: %q", data)
	}
	if gotPath != "/img.example.com:443/dish.jpg" {
		t.Fatalf("relay path wrong: %s", gotPath)
	}
}

func TestResolveEmptySet(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	r := NewResolver("http://unused", log)

	data, err := r.Resolve(context.Background(), nil, DefaultTargetWidth)
	if err != nil || data != nil {
		t.Fatalf("expected (nil, nil) for empty set, got (%v, %v)", data, err)
	}
}

func TestResolveFailureIsSoft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	log := logger.New(logger.LevelOff, nil)
	r := NewResolver(srv.URL+"/", log)

	data, err := r.Resolve(context.Background(), []domain.RecipeImage{img(700, 1)}, DefaultTargetWidth)
	if err != nil {
		t.Fatalf("fetch failure must be soft, got error %v", err)
	}
	if data != nil {
		t.Fatalf("expected no bytes on failure, got %d", len(data))
	}
}
