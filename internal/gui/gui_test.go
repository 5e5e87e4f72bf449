package gui

import (
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"filename-copier/internal/events"
	"filename-copier/internal/logger"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScaler struct {
	mu    sync.Mutex
	sizes []image.Point
	err   error
}

func (s *fakeScaler) Scale(w, h int) (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.sizes = append(s.sizes, image.Pt(w, h))
	return image.NewRGBA(image.Rect(0, 0, w, h)), nil
}

func (s *fakeScaler) calls() []image.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]image.Point(nil), s.sizes...)
}

func newTestManager(t *testing.T) (*Manager, fyne.Window) {
	t.Helper()
	test.NewTempApp(t)
	w := test.NewWindow(nil)
	t.Cleanup(w.Close)

	m := NewManager(&fakeScaler{}, logger.NoOpLogger{})
	w.SetContent(m.Content())
	return m, w
}

func TestManagerInitialLabels(t *testing.T) {
	m, _ := newTestManager(t)

	assert.Equal(t, "Start", m.toggle.Text)
	assert.Equal(t, "No folder selected", m.folderLabel.Text)
	assert.Equal(t, "No keybind set", m.keybindLabel.Text)
	assert.Equal(t, "Status: Stopped", m.statusLabel.Text)
}

func TestManagerViewUpdates(t *testing.T) {
	m, _ := newTestManager(t)

	m.SetFolder("/home/me/shots")
	m.SetKeybind("F9")
	m.SetRunning(true)
	m.SetStatus("Status: Running")

	assert.Equal(t, "Folder: /home/me/shots", m.folderLabel.Text)
	assert.Equal(t, "Keybind: F9", m.keybindLabel.Text)
	assert.Equal(t, "Stop", m.toggle.Text)
	assert.Equal(t, "Status: Running", m.statusLabel.Text)

	m.SetRunning(false)
	assert.Equal(t, "Start", m.toggle.Text)
}

func TestManagerButtonsInvokeHandlers(t *testing.T) {
	m, _ := newTestManager(t)

	var pressed []string
	m.SetToggleHandler(func() { pressed = append(pressed, "toggle") })
	m.SetChooseFolderHandler(func() { pressed = append(pressed, "folder") })
	m.SetKeybindHandler(func() { pressed = append(pressed, "keybind") })
	m.SetSignatureHandler(func() { pressed = append(pressed, "signature") })

	test.Tap(m.toggle)
	test.Tap(m.chooseFolder)
	test.Tap(m.setKeybind)
	test.Tap(m.signature)

	assert.Equal(t, []string{"toggle", "folder", "keybind", "signature"}, pressed)
}

func TestManagerButtonsWithoutHandlers(t *testing.T) {
	m, _ := newTestManager(t)

	assert.NotPanics(t, func() {
		test.Tap(m.toggle)
		test.Tap(m.signature)
	})
}

func TestManagerFollowsBusEvents(t *testing.T) {
	m, _ := newTestManager(t)
	bus := events.NewBus(8)
	defer bus.Shutdown()
	m.Subscribe(bus, nil)

	bus.Publish(events.Event{Type: events.RunningChanged, Flag: true})
	bus.Publish(events.Event{Type: events.StatusChanged, Text: "Copied to clipboard: a.png"})

	assert.Eventually(t, func() bool {
		return m.statusLabel.Text == "Copied to clipboard: a.png" && m.toggle.Text == "Stop"
	}, time.Second, 10*time.Millisecond)
}

func TestManagerDropsRejectedEvents(t *testing.T) {
	m, _ := newTestManager(t)
	bus := events.NewBus(8)
	m.Subscribe(bus, func(e events.Event) bool { return e.Generation == 2 })

	bus.Publish(events.Event{Type: events.StatusChanged, Text: "Copied to clipboard: old.png", Generation: 1})
	bus.Publish(events.Event{Type: events.RunningChanged, Flag: true, Generation: 1})
	bus.Publish(events.Event{Type: events.StatusChanged, Text: "Copied to clipboard: new.png", Generation: 2})
	bus.Shutdown()

	assert.Eventually(t, func() bool {
		return m.statusLabel.Text == "Copied to clipboard: new.png"
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "Start", m.toggle.Text)
}

func TestBackgroundScalesToPixelSize(t *testing.T) {
	test.NewTempApp(t)
	scaler := &fakeScaler{}
	bg := NewBackground(scaler, logger.NoOpLogger{})

	r := test.WidgetRenderer(bg)
	r.Layout(fyne.NewSize(320, 240))
	r.Layout(fyne.NewSize(320, 240))
	r.Layout(fyne.NewSize(500, 500))

	assert.Equal(t, []image.Point{image.Pt(320, 240), image.Pt(500, 500)}, scaler.calls())

	objects := r.Objects()
	require.Len(t, objects, 1)
	img, ok := objects[0].(*canvas.Image)
	require.True(t, ok)
	assert.Equal(t, canvas.ImageFillStretch, img.FillMode)
	require.NotNil(t, img.Image)
	assert.Equal(t, image.Rect(0, 0, 500, 500), img.Image.Bounds())
}

func TestBackgroundIgnoresEmptySizeAndErrors(t *testing.T) {
	test.NewTempApp(t)
	scaler := &fakeScaler{}
	bg := NewBackground(scaler, logger.NoOpLogger{})
	r := test.WidgetRenderer(bg)

	r.Layout(fyne.NewSize(0, 100))
	assert.Empty(t, scaler.calls())

	scaler.err = errors.New("closed")
	assert.NotPanics(t, func() { r.Layout(fyne.NewSize(100, 100)) })
	assert.Equal(t, fyne.NewSize(0, 0), bg.MinSize())
}

// pressKey delivers a key the way the window would.
func pressKey(t *testing.T, w fyne.Window, name fyne.KeyName) {
	t.Helper()
	ev := &fyne.KeyEvent{Name: name}
	if dc, ok := w.Canvas().(desktop.Canvas); ok {
		if fn := dc.OnKeyDown(); fn != nil {
			fn(ev)
		}
		return
	}
	if fn := w.Canvas().OnTypedKey(); fn != nil {
		fn(ev)
	}
}

func TestKeyCaptureRecordsNextKey(t *testing.T) {
	test.NewTempApp(t)
	w := test.NewWindow(nil)
	defer w.Close()
	k := NewKeyCapture(w, logger.NoOpLogger{})

	var got []string
	k.Capture(0, func(name string, err error) {
		assert.NoError(t, err)
		got = append(got, name)
	})
	assert.True(t, k.Pending())

	pressKey(t, w, fyne.KeyF9)
	pressKey(t, w, fyne.KeyA)

	assert.Equal(t, []string{"F9"}, got)
	assert.False(t, k.Pending())
}

func TestKeyCaptureTimeout(t *testing.T) {
	test.NewTempApp(t)
	w := test.NewWindow(nil)
	defer w.Close()
	k := NewKeyCapture(w, logger.NoOpLogger{})

	result := make(chan error, 1)
	k.Capture(20*time.Millisecond, func(name string, err error) {
		assert.Empty(t, name)
		result <- err
	})

	select {
	case err := <-result:
		assert.ErrorIs(t, err, ErrCaptureTimeout)
	case <-time.After(2 * time.Second):
		t.Fatal("capture did not time out")
	}
	assert.Eventually(t, func() bool { return !k.Pending() }, time.Second, 10*time.Millisecond)
}

func TestKeyCaptureReplacesPending(t *testing.T) {
	test.NewTempApp(t)
	w := test.NewWindow(nil)
	defer w.Close()
	k := NewKeyCapture(w, logger.NoOpLogger{})

	first, second := 0, 0
	k.Capture(0, func(string, error) { first++ })
	k.Capture(0, func(string, error) { second++ })

	pressKey(t, w, fyne.KeySpace)

	assert.Zero(t, first)
	assert.Equal(t, 1, second)
}
