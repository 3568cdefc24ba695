package usecase

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/semaphore"

	"sharebin/internal/domain/entity"
	"sharebin/internal/domain/service"
)

// maxPreviewDim is the bounding box previews are resized into.
const maxPreviewDim = 600

// Raster mime types the preview pipeline can decode. SVG is vector and
// deliberately absent; video preview support is experimental and stays
// disabled.
var previewableMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/tiff": true,
}

var compressionByFormat = map[string]string{
	"png":  "deflate",
	"jpeg": "dct",
	"gif":  "lzw",
	"bmp":  "none",
	"tiff": "lzw",
}

// PreviewSupported reports whether a preview can be generated for the
// mime type.
func PreviewSupported(mimeType string) bool {
	return previewableMimeTypes[mimeType]
}

// PreviewGenerator produces downscaled PNG renditions of uploaded
// images. Codec work runs on the calling goroutine but under a bounded
// semaphore, capping how many decode/resize passes execute at once.
type PreviewGenerator struct {
	store service.ObjectStore
	sem   *semaphore.Weighted
}

func NewPreviewGenerator(store service.ObjectStore, workers int) *PreviewGenerator {
	if workers < 1 {
		workers = 1
	}
	return &PreviewGenerator{
		store: store,
		sem:   semaphore.NewWeighted(int64(workers)),
	}
}

// CreatePreview decodes, downscales and stores a preview for file.
// Images already within the bounding box get no preview at all; render
// falls back to the original. Returns (nil, nil) in that case.
func (g *PreviewGenerator) CreatePreview(ctx context.Context, file *entity.File, r io.Reader) (*entity.Preview, error) {
	if !PreviewSupported(file.MimeType) {
		return nil, nil
	}

	if err := g.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer g.sem.Release(1)

	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image for file %s: %w", file.ID, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= maxPreviewDim && bounds.Dy() <= maxPreviewDim {
		return nil, nil
	}

	resized := imaging.Fit(img, maxPreviewDim, maxPreviewDim, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode preview for file %s: %w", file.ID, err)
	}

	previewName := previewFilename(file.Filename)
	location := file.ID + "-preview/" + previewName

	size, err := g.store.Put(ctx, &buf, location, "image/png")
	if err != nil {
		return nil, err
	}

	return &entity.Preview{
		FileID:           file.ID,
		Filename:         previewName,
		RelativeLocation: location,
		MimeType:         "image/png",
		Size:             size,
	}, nil
}

// Probe extracts dimensions, colorspace and compression without a full
// decode. Best-effort at the call sites; a failure here never fails the
// parent upload.
func (g *PreviewGenerator) Probe(ctx context.Context, file *entity.File, r io.Reader) (*entity.ImageMetadata, error) {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer g.sem.Release(1)

	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return nil, fmt.Errorf("probe image for file %s: %w", file.ID, err)
	}

	compression := compressionByFormat[format]
	if compression == "" {
		compression = format
	}

	return &entity.ImageMetadata{
		FileID:      file.ID,
		Width:       cfg.Width,
		Height:      cfg.Height,
		ColorSpace:  colorModelName(cfg.ColorModel),
		Compression: compression,
	}, nil
}

func previewFilename(filename string) string {
	if i := strings.LastIndex(filename, "."); i > 0 {
		filename = filename[:i]
	}
	return filename + ".png"
}

func colorModelName(m color.Model) string {
	switch m {
	case color.YCbCrModel:
		return "YCbCr"
	case color.RGBAModel:
		return "RGBA"
	case color.NRGBAModel:
		return "NRGBA"
	case color.RGBA64Model:
		return "RGBA64"
	case color.NRGBA64Model:
		return "NRGBA64"
	case color.GrayModel:
		return "Gray"
	case color.Gray16Model:
		return "Gray16"
	case color.CMYKModel:
		return "CMYK"
	}
	if _, ok := m.(color.Palette); ok {
		return "Paletted"
	}
	return "Unknown"
}
