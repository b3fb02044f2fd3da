package feed

import (
	"time"

	"github.com/google/uuid"

	"baselineexplorer/internal/catalog"
)

const (
	TypeWelcome    = "welcome"
	TypeViewUpdate = "view.update"
)

// Event is one line on the feed.
type Event struct {
	ID   string        `json:"id"`
	Type string        `json:"type"`
	At   time.Time     `json:"at"`
	View *catalog.View `json:"view,omitempty"`
}

func NewEvent(typ string, v *catalog.View) Event {
	return Event{
		ID:   uuid.NewString(),
		Type: typ,
		At:   time.Now().UTC(),
		View: v,
	}
}
