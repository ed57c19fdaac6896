package philo

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/philo/internal/reflex"
)

// RoundLogger returns an observer that logs round events of one game.
// Losses are logged at info, everything else at debug.
func RoundLogger(logger *log.Logger, gameID, user string) reflex.Observer {
	return reflex.ObserverFunc(func(ev reflex.Event) {
		switch ev.Kind {
		case reflex.EventRoundStarted:
			logger.Debug("round started", "game", gameID, "user", user, "target", ev.Target.Hex())
		case reflex.EventTargetShown:
			logger.Debug("target shown", "game", gameID, "user", user, "window", ev.Window)
		case reflex.EventHit:
			logger.Debug("hit", "game", gameID, "user", user,
				"score", ev.Score, "reaction_ms", int64(math.Round(ev.Reaction*1000)))
		case reflex.EventRoundLost:
			logger.Info("round lost", "game", gameID, "user", user,
				"score", ev.Score, "reason", ev.Reason)
		}
	})
}
