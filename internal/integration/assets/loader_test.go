package assets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/myling/study-backend/internal/config"
	"go.uber.org/zap"
)

func TestLoaderHTTP(t *testing.T) {
	var fontHits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/logo.png":
			_, _ = w.Write([]byte("logo"))
		case "/fonts/MALGUN.TTF":
			fontHits.Add(1)
			_, _ = w.Write([]byte("font"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg := config.AssetsConfig{
		HTTPClientConfig: config.HTTPClientConfig{RequestTimeout: 5 * time.Second, Url: srv.URL},
		LogoPath:         "/logo.png",
		FontPath:         "/fonts/malgun.ttf",
		FontAltPath:      "/fonts/MALGUN.TTF",
		CacheTTL:         time.Minute,
	}
	l := NewLoader(cfg, zap.NewNop())
	ctx := context.Background()

	logo, err := l.Logo(ctx)
	if err != nil || string(logo) != "logo" {
		t.Fatalf("Logo() = %q, %v", logo, err)
	}

	for i := 0; i < 3; i++ {
		font, err := l.Font(ctx)
		if err != nil || string(font) != "font" {
			t.Fatalf("Font() = %q, %v", font, err)
		}
	}
	if n := fontHits.Load(); n != 1 {
		t.Errorf("font fetched %d times, want cached after first", n)
	}
}

func TestLoaderDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "logo.png"), []byte("logo"), 0o600); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(config.AssetsConfig{
		Dir:         dir,
		LogoPath:    "/logo.png",
		FontPath:    "/fonts/malgun.ttf",
		FontAltPath: "/fonts/MALGUN.TTF",
	}, zap.NewNop())

	if logo, err := l.Logo(context.Background()); err != nil || string(logo) != "logo" {
		t.Errorf("Logo() = %q, %v", logo, err)
	}
	if _, err := l.Font(context.Background()); err == nil {
		t.Error("Font() error = nil, want missing file error")
	}
}

func TestDirFetcherStaysInDir(t *testing.T) {
	dir := t.TempDir()
	if _, err := dirFetcher(dir).fetch(context.Background(), "../../etc/passwd"); err == nil {
		t.Error("fetch() escaped the asset directory")
	}
}
