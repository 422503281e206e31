package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"path"
	"strings"

	"github.com/disintegration/imaging"
)

// Variant sizes (bounding box, px)
var Variants = map[string]int{
	"medium":    600,
	"thumbnail": 300,
}

type ImageProcessor struct {
	MaxSize int64 // bytes (default: 5MB)
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MaxSize: 5 * 1024 * 1024}
}

// ValidateImage: chỉ JPEG/PNG, không quá MaxSize
func (p *ImageProcessor) ValidateImage(data []byte) error {
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("image exceeds %dMB", p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("not an image: %w", err)
	}
	switch format {
	case "jpeg", "png":
		return nil
	default:
		return fmt.Errorf("image format %s not allowed (only jpeg/png)", format)
	}
}

// ProcessImage trả về map[variant][]byte: resize (giữ tỉ lệ) → JPEG quality 90
func (p *ImageProcessor) ProcessImage(data []byte) (map[string][]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	out := make(map[string][]byte, len(Variants))
	for name, size := range Variants {
		resized := imaging.Fit(img, size, size, imaging.Lanczos)
		b := new(bytes.Buffer)
		if err := jpeg.Encode(b, resized, &jpeg.Options{Quality: 90}); err != nil {
			return nil, fmt.Errorf("cannot encode %s: %w", name, err)
		}
		out[name] = b.Bytes()
	}
	return out, nil
}

// VariantKey: covers/abc-dune.png + thumbnail → covers/variants/abc-dune_thumbnail.jpg
func VariantKey(key, variant string) string {
	dir, file := path.Split(key)
	base := strings.TrimSuffix(file, path.Ext(file))
	return path.Join(dir, "variants", base+"_"+variant+".jpg")
}
