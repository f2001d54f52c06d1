package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/xolan/wfdash/internal/config"
)

// ErrInvalidImage is returned when screenshot bytes are not a decodable image.
var ErrInvalidImage = errors.New("not a valid image")

// ScreenshotService lists, previews and downloads screenshots
type ScreenshotService struct {
	api    API
	config config.Config
}

// NewScreenshotService creates a new ScreenshotService
func NewScreenshotService(backend API, cfg config.Config) *ScreenshotService {
	return &ScreenshotService{api: backend, config: cfg}
}

// List returns the screenshots captured on date.
func (s *ScreenshotService) List(ctx context.Context, date string) (*ScreenshotList, error) {
	resp, err := s.api.ListScreenshots(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list screenshots for %s: %w", date, err)
	}

	listDate := resp.Date
	if listDate == "" {
		listDate = date
	}
	return &ScreenshotList{Date: listDate, Items: resp.Screenshots, Count: resp.Count}, nil
}

// URL returns the full-size image address of a screenshot.
func (s *ScreenshotService) URL(date, filename string) string {
	return s.api.ScreenshotURL(date, filename)
}

// Fetch downloads a screenshot and decodes its dimensions. Bytes that do
// not decode yield an error wrapping ErrInvalidImage.
func (s *ScreenshotService) Fetch(ctx context.Context, date, filename string) (*ScreenshotImage, error) {
	data, err := s.api.Screenshot(ctx, date, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch screenshot %s: %w", filename, err)
	}

	cfg, kind, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("screenshot %s: %w", filename, ErrInvalidImage)
	}

	return &ScreenshotImage{
		Filename: filename,
		URL:      s.api.ScreenshotURL(date, filename),
		Data:     data,
		Format:   kind,
		Width:    cfg.Width,
		Height:   cfg.Height,
	}, nil
}

// Download saves a screenshot into dir, or the configured download
// directory when dir is empty. It returns the written path and byte count.
func (s *ScreenshotService) Download(ctx context.Context, date, filename, dir string) (string, int, error) {
	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) || strings.TrimSpace(name) == "" {
		return "", 0, fmt.Errorf("invalid screenshot filename %q", filename)
	}

	if dir == "" {
		dir = s.config.ResolvedDownloadDir()
	}

	data, err := s.api.Screenshot(ctx, date, filename)
	if err != nil {
		return "", 0, fmt.Errorf("failed to download screenshot %s: %w", filename, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create download directory: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", 0, fmt.Errorf("failed to save screenshot: %w", err)
	}
	return path, len(data), nil
}

// HumanBytes formats a byte count, e.g. "48 kB".
func HumanBytes(n int) string {
	return humanize.Bytes(uint64(n))
}
