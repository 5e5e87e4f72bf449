package background

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

func validate(mat gocv.Mat) error {
	if mat.Rows() <= 0 || mat.Cols() <= 0 {
		return fmt.Errorf("invalid dimensions: %dx%d", mat.Cols(), mat.Rows())
	}
	if mat.Type() != gocv.MatTypeCV8UC3 {
		return fmt.Errorf("unsupported Mat type %v, expected 8-bit BGR", mat.Type())
	}
	return nil
}

// bgrToRGBA converts a continuous 8-bit BGR Mat to an opaque RGBA image.
func bgrToRGBA(src gocv.Mat) (*image.RGBA, error) {
	if err := validate(src); err != nil {
		return nil, err
	}

	rows, cols := src.Rows(), src.Cols()
	data := src.ToBytes()
	if len(data) < rows*cols*3 {
		return nil, fmt.Errorf("Mat data too short: %d bytes for %dx%d", len(data), cols, rows)
	}

	img := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			si := (y*cols + x) * 3
			di := img.PixOffset(x, y)
			img.Pix[di+0] = data[si+2]
			img.Pix[di+1] = data[si+1]
			img.Pix[di+2] = data[si+0]
			img.Pix[di+3] = 255
		}
	}

	return img, nil
}
