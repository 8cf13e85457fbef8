package scraper

import (
	"context"
	"crypto/sha1"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeFilenameRegex = regexp.MustCompile(`[^a-z0-9-]+`)

// safeFilename turns a recipe title into a filesystem-friendly name,
// suffixed with a short hash of the source url so re-scrapes of a
// renamed recipe do not collide.
func safeFilename(title, imageUrl string) string {
	name := strings.ToLower(strings.TrimSpace(title))
	name = unsafeFilenameRegex.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")
	if name == "" {
		name = "recipe"
	}

	sum := sha1.Sum([]byte(imageUrl))
	ext := filepath.Ext(imageUrl)
	if idx := strings.IndexAny(ext, "?#"); idx >= 0 {
		ext = ext[:idx]
	}
	if ext == "" || len(ext) > 5 {
		ext = ".jpg"
	}
	return fmt.Sprintf("%s-%x%s", name, sum[:4], ext)
}

// DownloadImage saves a recipe's cover image into dir and returns the
// local path.
func (s *Scraper) DownloadImage(ctx context.Context, imageUrl, title, dir string) (string, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, safeFilename(title, imageUrl))

	res, err := s.Http.R().
		SetContext(ctx).
		SetOutput(path).
		Get(imageUrl)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", imageUrl, err)
	}
	if !res.IsSuccess() {
		return "", fmt.Errorf("download %s: status %d", imageUrl, res.StatusCode())
	}
	return path, nil
}
