package game

import (
	"errors"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/ncruces/zenity"
)

// ColorDialogs asks the user for a custom color.
type ColorDialogs interface {
	// EnterHex shows a text prompt prefilled with current.
	EnterHex(current string) (string, error)
	// PickColor shows a native color chooser and returns #rrggbb.
	PickColor(current string) (string, error)
}

type zenityDialogs struct{}

func (zenityDialogs) EnterHex(current string) (string, error) {
	return zenity.Entry("Hex color (#RRGGBB or #RGB)",
		zenity.Title("Custom Color"),
		zenity.EntryText(current),
	)
}

func (zenityDialogs) PickColor(current string) (string, error) {
	opts := []zenity.Option{zenity.Title("Custom Color")}
	if initial, err := colorful.Hex(current); err == nil {
		opts = append(opts, zenity.Color(initial))
	}

	picked, err := zenity.SelectColor(opts...)
	if err != nil {
		return "", err
	}
	c, ok := colorful.MakeColor(picked)
	if !ok {
		return "", errors.New("color picker returned a transparent color")
	}
	return c.Hex(), nil
}

// canceled reports whether err only means the dialog was dismissed.
func canceled(err error) bool {
	return errors.Is(err, zenity.ErrCanceled)
}
