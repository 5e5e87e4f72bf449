package gui

import (
	"image"
	"math"

	"filename-copier/internal/logger"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// Scaler produces the background at an exact pixel size.
type Scaler interface {
	Scale(width, height int) (image.Image, error)
}

// Background fills its whole area with the source image, rescaled to the
// device pixel size every time the area changes.
type Background struct {
	widget.BaseWidget

	scaler Scaler
	logger logger.Logger
}

func NewBackground(scaler Scaler, log logger.Logger) *Background {
	b := &Background{scaler: scaler, logger: log}
	b.ExtendBaseWidget(b)
	return b
}

func (b *Background) CreateRenderer() fyne.WidgetRenderer {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillStretch
	img.ScaleMode = canvas.ImageScaleSmooth

	return &backgroundRenderer{background: b, image: img}
}

// MinSize is zero so the image never forces the window larger.
func (b *Background) MinSize() fyne.Size {
	return fyne.NewSize(0, 0)
}

// pixelSize converts a logical size to device pixels for the canvas the
// widget is drawn on.
func (b *Background) pixelSize(size fyne.Size) (int, int) {
	scale := float32(1)
	if app := fyne.CurrentApp(); app != nil {
		if c := app.Driver().CanvasForObject(b); c != nil {
			scale = c.Scale()
		}
	}
	w := int(math.Round(float64(size.Width * scale)))
	h := int(math.Round(float64(size.Height * scale)))
	return w, h
}

type backgroundRenderer struct {
	background *Background
	image      *canvas.Image
	lastW      int
	lastH      int
}

func (r *backgroundRenderer) Layout(size fyne.Size) {
	r.image.Resize(size)
	r.image.Move(fyne.NewPos(0, 0))

	w, h := r.background.pixelSize(size)
	if w <= 0 || h <= 0 || (w == r.lastW && h == r.lastH) {
		return
	}

	img, err := r.background.scaler.Scale(w, h)
	if err != nil {
		r.background.logger.Error("Background", err, map[string]interface{}{
			"width":  w,
			"height": h,
		})
		return
	}

	r.lastW, r.lastH = w, h
	r.image.Image = img
	r.image.Refresh()
}

func (r *backgroundRenderer) MinSize() fyne.Size {
	return fyne.NewSize(0, 0)
}

func (r *backgroundRenderer) Refresh() {
	r.Layout(r.background.Size())
}

func (r *backgroundRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.image}
}

func (r *backgroundRenderer) Destroy() {}
