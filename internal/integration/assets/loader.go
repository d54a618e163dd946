package assets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/myling/study-backend/internal/config"
	"github.com/myling/study-backend/internal/integration/common"
	"github.com/myling/study-backend/internal/layout"
	pkghttp "github.com/myling/study-backend/pkg/http"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	logoKey = "logo"
	fontKey = "font"
)

var (
	_ layout.FontSource = &Loader{}
	_ layout.LogoSource = &Loader{}
)

type fetcher interface {
	fetch(ctx context.Context, path string) ([]byte, error)
}

// Loader fetches the header logo and the embeddable font, either from an
// asset host or from a local directory, and keeps successful results cached.
type Loader struct {
	cfg    config.AssetsConfig
	source fetcher
	cache  *cache.Cache
	logger *zap.Logger
}

func NewLoader(cfg config.AssetsConfig, logger *zap.Logger) *Loader {
	var src fetcher
	if cfg.Url != "" {
		src = &httpFetcher{connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger)}
	} else {
		src = dirFetcher(cfg.Dir)
	}

	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = cache.NoExpiration
	}

	return &Loader{
		cfg:    cfg,
		source: src,
		cache:  cache.New(ttl, 2*ttl),
		logger: logger,
	}
}

// Logo returns the header image bytes.
func (l *Loader) Logo(ctx context.Context) ([]byte, error) {
	return l.cached(ctx, logoKey, l.cfg.LogoPath)
}

// Font returns the embeddable font, trying the alternate-casing path when
// the primary path fails.
func (l *Loader) Font(ctx context.Context) ([]byte, error) {
	data, err := l.cached(ctx, fontKey, l.cfg.FontPath)
	if err == nil || l.cfg.FontAltPath == "" || l.cfg.FontAltPath == l.cfg.FontPath {
		return data, err
	}

	ctxzap.Debug(ctx, "font not found at primary path, trying alternate",
		zap.String("path", l.cfg.FontPath), zap.Error(err))

	alt, altErr := l.cached(ctx, fontKey, l.cfg.FontAltPath)
	if altErr != nil {
		return nil, errors.Join(err, altErr)
	}
	return alt, nil
}

func (l *Loader) cached(ctx context.Context, key, path string) ([]byte, error) {
	if data, ok := l.cache.Get(key); ok {
		return data.([]byte), nil
	}

	data, err := l.source.fetch(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load asset %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("load asset %s: empty file", path)
	}

	l.cache.SetDefault(key, data)
	return data, nil
}

type httpFetcher struct {
	connector *pkghttp.Connector
}

func (f *httpFetcher) fetch(ctx context.Context, path string) ([]byte, error) {
	return f.connector.DoRawRequest(ctx, path)
}

type dirFetcher string

func (d dirFetcher) fetch(_ context.Context, path string) ([]byte, error) {
	clean := filepath.Clean("/" + strings.TrimPrefix(path, "/"))
	return os.ReadFile(filepath.Join(string(d), clean))
}
