// Package media handles product photo storage and thumbnail generation.
package media

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

var dataURIPattern = regexp.MustCompile(`^data:image/\w+;base64,`)

// ImageProcessor stores product photos under basePath and renders WebP
// thumbnails alongside them.
type ImageProcessor struct {
	basePath       string
	thumbnailWidth int
}

func NewImageProcessor(basePath string, thumbnailWidth int) *ImageProcessor {
	return &ImageProcessor{
		basePath:       basePath,
		thumbnailWidth: thumbnailWidth,
	}
}

// ProcessProductPhoto decodes a base64 data URI, saves the original under
// products/ and a WebP thumbnail under products/thumbs/. It returns the
// relative URL paths of the original and the thumbnail.
func (p *ImageProcessor) ProcessProductPhoto(data, productID string) (string, string, error) {
	if data == "" {
		return "", "", fmt.Errorf("empty photo data")
	}

	ext := extractExtension(data)
	filename := fmt.Sprintf("%s.%s", productID, ext)

	productDir := filepath.Join(p.basePath, "products")
	thumbsDir := filepath.Join(productDir, "thumbs")
	if err := os.MkdirAll(thumbsDir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create media directories: %w", err)
	}

	originalPath, err := writeDataURI(data, filename, productDir)
	if err != nil {
		return "", "", err
	}

	thumbFilename := fmt.Sprintf("%s_%dpx.webp", productID, p.thumbnailWidth)
	if err := p.writeThumbnail(originalPath, filepath.Join(thumbsDir, thumbFilename)); err != nil {
		os.Remove(originalPath)
		return "", "", err
	}

	return "/media/products/" + filename, "/media/products/thumbs/" + thumbFilename, nil
}

// DeleteProductPhoto removes the stored original and its thumbnail. Missing
// files are not an error.
func (p *ImageProcessor) DeleteProductPhoto(photoURL string) error {
	if photoURL == "" {
		return nil
	}

	filename := filepath.Base(photoURL)
	basename := strings.TrimSuffix(filename, filepath.Ext(filename))

	originalPath := filepath.Join(p.basePath, "products", filename)
	if err := os.Remove(originalPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove photo: %w", err)
	}

	thumbPath := filepath.Join(p.basePath, "products", "thumbs",
		fmt.Sprintf("%s_%dpx.webp", basename, p.thumbnailWidth))
	if err := os.Remove(thumbPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove thumbnail: %w", err)
	}
	return nil
}

func (p *ImageProcessor) writeThumbnail(originalPath, thumbPath string) error {
	original, err := os.Open(originalPath)
	if err != nil {
		return fmt.Errorf("failed to open photo: %w", err)
	}
	defer original.Close()

	img, err := imaging.Decode(original)
	if err != nil {
		return fmt.Errorf("failed to decode photo: %w", err)
	}

	// Zero height preserves the aspect ratio.
	resized := imaging.Resize(img, p.thumbnailWidth, 0, imaging.Lanczos)

	if err := webp.Save(thumbPath, resized, &webp.Options{Quality: 85}); err != nil {
		return fmt.Errorf("failed to save thumbnail: %w", err)
	}
	return nil
}

func writeDataURI(data, filename, targetDir string) (string, error) {
	if !dataURIPattern.MatchString(data) {
		return "", fmt.Errorf("invalid image data URI")
	}

	decoded, err := base64.StdEncoding.DecodeString(dataURIPattern.ReplaceAllString(data, ""))
	if err != nil {
		return "", fmt.Errorf("failed to decode photo data: %w", err)
	}

	fullPath := filepath.Join(targetDir, filename)
	if err := os.WriteFile(fullPath, decoded, 0644); err != nil {
		return "", fmt.Errorf("failed to write photo: %w", err)
	}
	return fullPath, nil
}

func extractExtension(data string) string {
	switch {
	case strings.Contains(data, "data:image/png"):
		return "png"
	case strings.Contains(data, "data:image/jpeg"), strings.Contains(data, "data:image/jpg"):
		return "jpg"
	case strings.Contains(data, "data:image/webp"):
		return "webp"
	default:
		return "png"
	}
}
