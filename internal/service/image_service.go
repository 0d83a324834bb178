package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

// maxImageDimension bounds the longest edge of a stored cover image.
const maxImageDimension = 1920

// ImageService stores uploaded cover images content-addressed on local
// disk, writing a JPEG master plus a WebP variant for modern clients.
type ImageService struct {
	imageRepo     repository.ImageRepository
	uploadDir     string
	publicBaseURL string
	maxBytes      int64
}

// StoredImage is what the upload endpoint returns to the client.
type StoredImage struct {
	URL     string `json:"url"`
	WebPURL string `json:"webp_url"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Hash    string `json:"hash"`
}

func NewImageService(imageRepo repository.ImageRepository, uploadDir, publicBaseURL string, maxUploadMB int) *ImageService {
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	return &ImageService{
		imageRepo:     imageRepo,
		uploadDir:     uploadDir,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		maxBytes:      int64(maxUploadMB) << 20,
	}
}

// Store validates, normalizes and persists one uploaded image. The same
// bytes uploaded twice return the existing record without touching disk.
func (s *ImageService) Store(ctx context.Context, uploaderID uint, data []byte, mimeType string) (*StoredImage, error) {
	if int64(len(data)) > s.maxBytes {
		return nil, models.NewValidationError(fmt.Sprintf("Image exceeds %d MB limit", s.maxBytes>>20))
	}

	switch mimeType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		return nil, models.NewValidationError("Unsupported image type (jpeg, png or webp)")
	}

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	if existing, err := s.imageRepo.GetByHash(ctx, hash); err == nil {
		return s.publicView(existing), nil
	}

	src, err := decodeImage(data, mimeType)
	if err != nil {
		return nil, models.NewValidationError("Image data is corrupt or not a " + mimeType)
	}
	src = scaleDown(src)
	bounds := src.Bounds()

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, models.NewInternalError(err)
	}

	jpegPath := filepath.Join(s.uploadDir, hash+".jpg")
	webpPath := filepath.Join(s.uploadDir, hash+".webp")

	var jpegBuf bytes.Buffer
	if err := jpeg.Encode(&jpegBuf, src, &jpeg.Options{Quality: 85}); err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := os.WriteFile(jpegPath, jpegBuf.Bytes(), 0o644); err != nil {
		return nil, models.NewInternalError(err)
	}

	var webpBuf bytes.Buffer
	if err := webp.Encode(&webpBuf, src, &webp.Options{Quality: 80}); err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := os.WriteFile(webpPath, webpBuf.Bytes(), 0o644); err != nil {
		return nil, models.NewInternalError(err)
	}

	img := &models.Image{
		Hash:       hash,
		UploaderID: uploaderID,
		MimeType:   mimeType,
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		SizeBytes:  int64(jpegBuf.Len()),
		Path:       jpegPath,
		WebPPath:   webpPath,
	}
	if err := s.imageRepo.Create(ctx, img); err != nil {
		return nil, err
	}
	return s.publicView(img), nil
}

func (s *ImageService) publicView(img *models.Image) *StoredImage {
	return &StoredImage{
		URL:     s.publicBaseURL + "/uploads/" + img.Hash + ".jpg",
		WebPURL: s.publicBaseURL + "/uploads/" + img.Hash + ".webp",
		Width:   img.Width,
		Height:  img.Height,
		Hash:    img.Hash,
	}
}

func decodeImage(data []byte, mimeType string) (image.Image, error) {
	switch mimeType {
	case "image/jpeg":
		return jpeg.Decode(bytes.NewReader(data))
	case "image/png":
		return png.Decode(bytes.NewReader(data))
	case "image/webp":
		return webp.Decode(bytes.NewReader(data))
	}
	return nil, fmt.Errorf("unsupported mime type %q", mimeType)
}

// scaleDown resizes so the longest edge fits maxImageDimension,
// preserving aspect ratio. Smaller images pass through untouched.
func scaleDown(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxImageDimension && h <= maxImageDimension {
		return src
	}

	scale := float64(maxImageDimension) / float64(w)
	if h > w {
		scale = float64(maxImageDimension) / float64(h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
