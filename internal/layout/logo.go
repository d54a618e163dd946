package layout

import (
	"context"
	"errors"
	"fmt"
)

// LogoImageName is the name the header image is registered under.
const LogoImageName = "myling-logo"

var errNoLogoSource = errors.New("no logo source configured")

// LogoSource fetches the header image.
type LogoSource interface {
	Logo(ctx context.Context) ([]byte, error)
}

// ImageRegistry registers an image and returns its pixel dimensions.
type ImageRegistry interface {
	RegisterImage(name string, data []byte) (width, height float64, err error)
}

// RegisterLogo fetches and registers the header image. A nil logo with an
// error means the header falls back to text.
func RegisterLogo(ctx context.Context, reg ImageRegistry, src LogoSource) (*Logo, error) {
	if src == nil {
		return nil, errNoLogoSource
	}

	data, err := src.Logo(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch logo: %w", err)
	}

	w, h, err := reg.RegisterImage(LogoImageName, data)
	if err != nil {
		return nil, fmt.Errorf("register logo: %w", err)
	}

	return &Logo{Name: LogoImageName, Width: w, Height: h}, nil
}
