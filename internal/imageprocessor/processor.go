package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	_ "image/gif"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Processor downscales bottle photos.
type Processor struct {
	quality int // JPEG quality (1-100)
	maxSide int // 0 disables downscaling
}

func NewProcessor(quality, maxSide int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	if maxSide < 0 {
		maxSide = 0
	}
	return &Processor{
		quality: quality,
		maxSide: maxSide,
	}
}

// Fit returns data unchanged when the image already fits the bound or is not
// a PNG/JPEG; otherwise it returns the image scaled down to fit, re-encoded
// in its own format. resized reports which happened.
func (p *Processor) Fit(data []byte) (out []byte, resized bool, err error) {
	if p.maxSide == 0 {
		return data, false, nil
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode image: %w", err)
	}
	if format != "png" && format != "jpeg" {
		return data, false, nil
	}
	if cfg.Width <= p.maxSide && cfg.Height <= p.maxSide {
		return data, false, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := p.encode(&buf, p.resize(img, p.maxSide, p.maxSide), format); err != nil {
		return nil, false, err
	}
	return buf.Bytes(), true, nil
}

func (p *Processor) encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "jpeg", "jpg":
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: p.quality}); err != nil {
			return fmt.Errorf("failed to encode JPEG: %w", err)
		}
	case "png":
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("failed to encode PNG: %w", err)
		}
	default:
		return fmt.Errorf("unsupported image format: %s", format)
	}
	return nil
}

// resize scales img into maxWidth x maxHeight keeping the aspect ratio.
func (p *Processor) resize(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	ratio := float64(width) / float64(height)
	newWidth := maxWidth
	newHeight := maxHeight

	if float64(maxWidth)/float64(maxHeight) > ratio {
		newWidth = int(float64(maxHeight) * ratio)
	} else {
		newHeight = int(float64(maxWidth) / ratio)
	}
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	return dst
}

// IsValidImage reports whether reader holds a decodable PNG, JPEG, GIF or WebP header.
func IsValidImage(reader io.Reader) bool {
	_, _, err := image.DecodeConfig(reader)
	return err == nil
}
