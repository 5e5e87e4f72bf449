// Package background loads the window background and rescales it to the
// window size with Lanczos interpolation.
package background

import (
	"fmt"
	"image"
	"sync"

	"filename-copier/internal/logger"

	"gocv.io/x/gocv"
)

type Scaler struct {
	mu       sync.Mutex
	src      gocv.Mat
	closed   bool
	lastSize image.Point
	last     image.Image
	logger   logger.Logger
}

// Load reads the image at path. A missing or undecodable file is an error
// the caller treats as fatal.
func Load(path string, log logger.Logger) (*Scaler, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("failed to load background image %s", path)
	}
	if err := validate(mat); err != nil {
		mat.Close()
		return nil, fmt.Errorf("background image %s: %w", path, err)
	}

	log.Info("Background", "image loaded", map[string]interface{}{
		"path":   path,
		"width":  mat.Cols(),
		"height": mat.Rows(),
	})

	return &Scaler{src: mat, logger: log}, nil
}

// Size is the source image size in pixels.
func (s *Scaler) Size() image.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return image.Pt(s.src.Cols(), s.src.Rows())
}

// Scale returns the image stretched to exactly width x height pixels. The
// aspect ratio is not preserved. The last result is reused while the size
// is unchanged.
func (s *Scaler) Scale(width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", width, height)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("background scaler closed")
	}

	size := image.Pt(width, height)
	if s.last != nil && s.lastSize == size {
		return s.last, nil
	}

	dst := gocv.NewMat()
	defer dst.Close()

	gocv.Resize(s.src, &dst, size, 0, 0, gocv.InterpolationLanczos4)
	if dst.Empty() {
		return nil, fmt.Errorf("resize to %dx%d produced an empty image", width, height)
	}

	img, err := bgrToRGBA(dst)
	if err != nil {
		return nil, err
	}

	s.last = img
	s.lastSize = size

	s.logger.Debug("Background", "rescaled", map[string]interface{}{
		"width":  width,
		"height": height,
	})
	return img, nil
}

func (s *Scaler) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.last = nil
	s.src.Close()
}
