package pictdb

import (
	"fmt"

	"github.com/h2non/bimg"
)

// imageAdapter is the narrow interface C5 needs from the JPEG codec: get
// dimensions of an in-memory buffer, and resize-to-fit into a new
// in-memory JPEG buffer. The production implementation wraps bimg
// (libvips); tests may substitute a fake.
type imageAdapter interface {
	dimensions(buf []byte) (width, height uint32, err error)
	resizeToFit(buf []byte, maxW, maxH uint16) (out []byte, err error)
}

// bimgAdapter implements imageAdapter using github.com/h2non/bimg.
type bimgAdapter struct{}

func (bimgAdapter) dimensions(buf []byte) (uint32, uint32, error) {
	size, err := bimg.NewImage(buf).Size()
	if err != nil {
		return 0, 0, newErr(KindImage, "dimensions", err)
	}

	if size.Width <= 0 || size.Height <= 0 {
		return 0, 0, newErr(KindImage, "dimensions", fmt.Errorf("non-positive dimensions %dx%d", size.Width, size.Height))
	}

	return uint32(size.Width), uint32(size.Height), nil
}

// resizeToFit computes ratio = min(maxW/w, maxH/h), never upscaling past
// that ratio, and returns the re-encoded JPEG bytes (spec.md §4.5).
func (a bimgAdapter) resizeToFit(buf []byte, maxW, maxH uint16) ([]byte, error) {
	w, h, err := a.dimensions(buf)
	if err != nil {
		return nil, err
	}

	targetW, targetH := fitDimensions(w, h, uint32(maxW), uint32(maxH))

	out, err := bimg.NewImage(buf).Resize(int(targetW), int(targetH))
	if err != nil {
		return nil, newErr(KindImage, "resizeToFit", err)
	}

	out, err = bimg.NewImage(out).Convert(bimg.JPEG)
	if err != nil {
		return nil, newErr(KindImage, "resizeToFit", err)
	}

	return out, nil
}

// fitDimensions computes the largest (width, height) that fits within
// (maxW, maxH) while preserving aspect ratio and never upscaling, per the
// ratio rule in spec.md §4.5.
func fitDimensions(w, h, maxW, maxH uint32) (uint32, uint32) {
	ratio := minRatio(float64(maxW)/float64(w), float64(maxH)/float64(h))
	if ratio > 1 {
		ratio = 1
	}

	targetW := uint32(float64(w) * ratio)
	targetH := uint32(float64(h) * ratio)

	if targetW < 1 {
		targetW = 1
	}

	if targetH < 1 {
		targetH = 1
	}

	return targetW, targetH
}

func minRatio(a, b float64) float64 {
	if a < b {
		return a
	}

	return b
}
