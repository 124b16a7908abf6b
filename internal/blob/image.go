package blob

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/disintegration/imaging"
)

// MaxImageDimension bounds the width and height of normalized images.
const MaxImageDimension = 1600

var ErrUnsupportedImage = errors.New("unsupported image format (use jpg, png or gif)")

// Image is an upload re-encoded for storage.
type Image struct {
	Data        []byte
	ContentType string
	FileName    string
}

// NormalizeImage decodes an uploaded image, applies EXIF orientation, downscales it to fit
// MaxImageDimension and re-encodes it. PNG and GIF become PNG, everything else JPEG.
func NormalizeImage(r io.Reader, fileName string) (Image, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxObjectSize+1))
	if err != nil {
		return Image{}, fmt.Errorf("reading image: %w", err)
	}
	if len(raw) > MaxObjectSize {
		return Image{}, ErrTooLarge
	}

	sniffed := http.DetectContentType(raw)
	var format imaging.Format
	switch sniffed {
	case "image/jpeg":
		format = imaging.JPEG
	case "image/png", "image/gif":
		format = imaging.PNG
	default:
		return Image{}, ErrUnsupportedImage
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	b := img.Bounds()
	if b.Dx() > MaxImageDimension || b.Dy() > MaxImageDimension {
		img = imaging.Fit(img, MaxImageDimension, MaxImageDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	opts := []imaging.EncodeOption{}
	contentType := "image/png"
	ext := ".png"
	if format == imaging.JPEG {
		opts = append(opts, imaging.JPEGQuality(85))
		contentType = "image/jpeg"
		ext = ".jpg"
	}
	if err := imaging.Encode(&buf, img, format, opts...); err != nil {
		return Image{}, fmt.Errorf("encoding image: %w", err)
	}

	return Image{
		Data:        buf.Bytes(),
		ContentType: contentType,
		FileName:    withExt(fileName, ext),
	}, nil
}

func withExt(fileName, ext string) string {
	base := strings.TrimSuffix(fileName, path.Ext(fileName))
	if base == "" {
		base = "image"
	}
	return base + ext
}
