// Package gui builds the single application window. Manager methods that
// satisfy app.View must run on the UI goroutine; updates produced elsewhere
// arrive through the event bus and are marshalled with fyne.Do.
package gui

import (
	"image/color"

	"filename-copier/internal/events"
	"filename-copier/internal/logger"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const (
	Title = "File Name Copier"

	labelStart     = "Start"
	labelStop      = "Stop"
	labelNoFolder  = "No folder selected"
	labelNoKeybind = "No keybind set"
	signatureText  = "Made by PurplePC"
	initialStatus  = "Status: Stopped"
	subscriberID   = "gui-manager"
)

var signatureColor = color.NRGBA{R: 0x80, G: 0x00, B: 0x80, A: 0xff}

type Manager struct {
	logger logger.Logger

	background   *Background
	toggle       *widget.Button
	chooseFolder *widget.Button
	setKeybind   *widget.Button
	folderLabel  *widget.Label
	keybindLabel *widget.Label
	statusLabel  *widget.Label
	signature    *widget.Button

	toggleHandler    func()
	folderHandler    func()
	keybindHandler   func()
	signatureHandler func()
}

func NewManager(scaler Scaler, log logger.Logger) *Manager {
	m := &Manager{
		logger:       log,
		background:   NewBackground(scaler, log),
		folderLabel:  widget.NewLabel(labelNoFolder),
		keybindLabel: widget.NewLabel(labelNoKeybind),
		statusLabel:  widget.NewLabel(initialStatus),
	}

	m.toggle = widget.NewButton(labelStart, m.onToggle)
	m.toggle.Importance = widget.HighImportance
	m.chooseFolder = widget.NewButton("Choose Folder", m.onChooseFolder)
	m.setKeybind = widget.NewButton("Set Keybind", m.onSetKeybind)
	m.signature = widget.NewButton("", m.onSignature)
	m.signature.Importance = widget.LowImportance

	m.folderLabel.Alignment = fyne.TextAlignCenter
	m.keybindLabel.Alignment = fyne.TextAlignCenter
	m.statusLabel.Alignment = fyne.TextAlignCenter
	m.statusLabel.Wrapping = fyne.TextWrapWord

	return m
}

// Content is the window's root object: the background with the controls
// stacked on top and the signature in the bottom-right corner.
func (m *Manager) Content() fyne.CanvasObject {
	controls := container.NewVBox(
		m.toggle,
		m.chooseFolder,
		m.folderLabel,
		m.setKeybind,
		m.keybindLabel,
		m.statusLabel,
	)

	text := canvas.NewText(signatureText, signatureColor)
	text.Alignment = fyne.TextAlignCenter
	text.TextStyle = fyne.TextStyle{Italic: true}
	signature := container.NewStack(m.signature, container.NewPadded(text))

	footer := container.NewHBox(layout.NewSpacer(), signature)

	return container.NewStack(
		m.background,
		container.NewBorder(nil, footer, nil, nil, container.NewCenter(controls)),
	)
}

func (m *Manager) SetToggleHandler(handler func()) {
	m.toggleHandler = handler
}

func (m *Manager) SetChooseFolderHandler(handler func()) {
	m.folderHandler = handler
}

func (m *Manager) SetKeybindHandler(handler func()) {
	m.keybindHandler = handler
}

func (m *Manager) SetSignatureHandler(handler func()) {
	m.signatureHandler = handler
}

func (m *Manager) SetStatus(text string) {
	m.statusLabel.SetText(text)
	m.logger.Debug("GUIManager", "status updated", map[string]interface{}{
		"status": text,
	})
}

func (m *Manager) SetFolder(path string) {
	if path == "" {
		m.folderLabel.SetText(labelNoFolder)
		return
	}
	m.folderLabel.SetText("Folder: " + path)
}

func (m *Manager) SetKeybind(name string) {
	if name == "" {
		m.keybindLabel.SetText(labelNoKeybind)
		return
	}
	m.keybindLabel.SetText("Keybind: " + name)
}

func (m *Manager) SetRunning(running bool) {
	if running {
		m.toggle.SetText(labelStop)
		return
	}
	m.toggle.SetText(labelStart)
}

// Subscribe routes bus events onto the UI goroutine. accept, when not nil,
// is evaluated there and drops events it rejects.
func (m *Manager) Subscribe(bus *events.Bus, accept func(events.Event) bool) {
	deliver := func(e events.Event, apply func()) {
		fyne.Do(func() {
			if accept != nil && !accept(e) {
				m.logger.Debug("GUIManager", "stale event dropped", map[string]interface{}{
					"type": e.Type,
				})
				return
			}
			apply()
		})
	}

	bus.Subscribe(events.StatusChanged, events.HandlerFunc{
		ID: subscriberID,
		Fn: func(e events.Event) {
			deliver(e, func() { m.SetStatus(e.Text) })
		},
	})
	bus.Subscribe(events.RunningChanged, events.HandlerFunc{
		ID: subscriberID,
		Fn: func(e events.Event) {
			deliver(e, func() { m.SetRunning(e.Flag) })
		},
	})
}

func (m *Manager) onToggle() {
	if m.toggleHandler != nil {
		m.toggleHandler()
	}
}

func (m *Manager) onChooseFolder() {
	if m.folderHandler != nil {
		m.folderHandler()
	}
}

func (m *Manager) onSetKeybind() {
	if m.keybindHandler != nil {
		m.keybindHandler()
	}
}

func (m *Manager) onSignature() {
	if m.signatureHandler != nil {
		m.signatureHandler()
	}
}
