package storage

import (
	"errors"
	"math"

	"github.com/vovakirdan/philo/internal/reflex"
)

// errNoStore is reported by a journal that was built without a store.
var errNoStore = errors.New("storage: journal has no store")

// Journal writes round events of one game into a Store.
// It is a reflex.Observer; attach it with Engine.Subscribe.
type Journal struct {
	store   *Store
	gameID  string
	session string
	err     error
}

// NewJournal creates a journal for gameID. session may be empty.
func NewJournal(store *Store, gameID, session string) *Journal {
	return &Journal{store: store, gameID: gameID, session: session}
}

// OnRoundEvent records hits and losses. Other events are ignored.
func (j *Journal) OnRoundEvent(ev reflex.Event) {
	r := Reaction{GameID: j.gameID, Session: j.session, Score: ev.Score}
	switch ev.Kind {
	case reflex.EventHit:
		r.Kind = KindHit
		r.ReactionMS = int64(math.Round(ev.Reaction * 1000))
	case reflex.EventRoundLost:
		r.Kind = string(ev.Reason)
	default:
		return
	}

	if j.store == nil {
		j.err = errNoStore
		return
	}
	if _, err := j.store.Record(r); err != nil {
		j.err = err
	}
}

// Err returns the last write error, if any.
func (j *Journal) Err() error {
	return j.err
}

var _ reflex.Observer = (*Journal)(nil)
