// Package clipboard writes text to the system clipboard.
package clipboard

import (
	"fmt"

	"filename-copier/internal/logger"

	"github.com/atotto/clipboard"
)

type Writer struct {
	write  func(string) error
	logger logger.Logger
}

func NewWriter(log logger.Logger) *Writer {
	return &Writer{write: clipboard.WriteAll, logger: log}
}

// Write replaces the clipboard text with text.
func (w *Writer) Write(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard unavailable: no clipboard utility found")
	}
	if err := w.write(text); err != nil {
		return fmt.Errorf("clipboard write failed: %w", err)
	}
	w.logger.Debug("Clipboard", "text written", map[string]interface{}{"length": len(text)})
	return nil
}
