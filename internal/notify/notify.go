// Package notify shows desktop notifications after a copy.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

type Notifier struct {
	title string
	icon  string
	send  func(title, message, icon string) error
}

func New(title, icon string) *Notifier {
	return &Notifier{
		title: title,
		icon:  icon,
		send: func(title, message, icon string) error {
			return beeep.Notify(title, message, icon)
		},
	}
}

func (n *Notifier) Copied(name string) error {
	if err := n.send(n.title, fmt.Sprintf("Copied to clipboard: %s", name), n.icon); err != nil {
		return fmt.Errorf("notification failed: %w", err)
	}
	return nil
}
