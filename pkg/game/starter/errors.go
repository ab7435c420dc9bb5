package starter

import (
	"errors"

	"frontier/pkg/game/i18n"
)

// ErrNotEnoughMemory is returned when the machine cannot hold the game.
var ErrNotEnoughMemory = errors.New("not enough memory")

// ShowableError carries a message meant for the player.
type ShowableError struct {
	Message string
	Err     error
}

func (e *ShowableError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ShowableError) Unwrap() error {
	return e.Err
}

// UserMessage returns what to tell the player about a failed quickstart.
func UserMessage(err error) string {
	var showable *ShowableError
	switch {
	case errors.As(err, &showable):
		return showable.Message
	case errors.Is(err, ErrNotEnoughMemory):
		return i18n.Tr("ERR_NOT_ENOUGH_MEMORY")
	default:
		return i18n.Tr("ERR_QUICKSTART")
	}
}
