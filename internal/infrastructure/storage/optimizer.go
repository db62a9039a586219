package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"

	"github.com/disintegration/imaging"
)

// Image content types accepted for upload
const (
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
	ContentTypeGIF  = "image/gif"
	ContentTypeWebP = "image/webp"
)

// ErrCropUnsupported is returned when a crop is requested for an image that is
// stored as uploaded
var ErrCropUnsupported = errors.New("crop is only supported for JPEG and PNG images")

// Crop asks for a center crop to exactly Width x Height; zero means no crop
type Crop struct {
	Width  int
	Height int
}

// IsZero reports whether no crop was requested
func (c Crop) IsZero() bool {
	return c.Width <= 0 || c.Height <= 0
}

// ProcessedImage is the output of ImageOptimizer.Optimize
type ProcessedImage struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

// Extension returns the file extension for the content type
func (p *ProcessedImage) Extension() string {
	switch p.ContentType {
	case ContentTypeJPEG:
		return ".jpg"
	case ContentTypePNG:
		return ".png"
	case ContentTypeGIF:
		return ".gif"
	case ContentTypeWebP:
		return ".webp"
	}
	return ""
}

// ImageOptimizer scales JPEG and PNG uploads down to a maximum width and
// applies center crops. GIF and WebP files are stored as uploaded since
// re-encoding them would drop animation, so they cannot be cropped.
type ImageOptimizer struct {
	maxWidth    int
	jpegQuality int
}

// NewImageOptimizer creates an optimizer; zero values fall back to 1920px and quality 85
func NewImageOptimizer(maxWidth, jpegQuality int) *ImageOptimizer {
	if maxWidth <= 0 {
		maxWidth = 1920
	}
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = 85
	}
	return &ImageOptimizer{maxWidth: maxWidth, jpegQuality: jpegQuality}
}

// Optimize prepares an upload of the given content type for the web
func (o *ImageOptimizer) Optimize(data []byte, contentType string, crop Crop) (*ProcessedImage, error) {
	var format imaging.Format
	switch contentType {
	case ContentTypeJPEG:
		format = imaging.JPEG
	case ContentTypePNG:
		format = imaging.PNG
	case ContentTypeGIF, ContentTypeWebP:
		if !crop.IsZero() {
			return nil, ErrCropUnsupported
		}
		return &ProcessedImage{Data: data, ContentType: contentType}, nil
	default:
		return nil, fmt.Errorf("unsupported image type %q", contentType)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	switch {
	case !crop.IsZero():
		img = imaging.Fill(img, crop.Width, crop.Height, imaging.Center, imaging.Lanczos)
	case img.Bounds().Dx() > o.maxWidth:
		img = imaging.Resize(img, o.maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format,
		imaging.JPEGQuality(o.jpegQuality),
		imaging.PNGCompressionLevel(png.BestCompression),
	); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	bounds := img.Bounds()
	return &ProcessedImage{
		Data:        buf.Bytes(),
		ContentType: contentType,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
	}, nil
}
