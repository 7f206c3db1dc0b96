package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hammamikhairi/forager/internal/logger"
)

func TestSaverWritesDocument(t *testing.T) {
	dir := t.TempDir()
	log := logger.New(logger.LevelOff, nil)
	saver := NewSaver(&stubResolver{byID: map[int][]byte{1: []byte("main")}}, dir, log)

	path, err := saver.Save(context.Background(), fixtureRecipe())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != filepath.Join(dir, "spicy-tofu-bowl.html") {
		t.Fatalf("unexpected path %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "Spicy Tofu Bowl") {
		t.Fatal("written document missing recipe title")
	}
}
