package main

import (
	"time"

	"github.com/ericogr/creature-battles/internal/constants"
	"github.com/ericogr/creature-battles/internal/logging"
)

type idleExpirer interface {
	ExpireIdleBattles(timeout time.Duration) (int, error)
	RetryArchives() (int, error)
}

// startIdleScanner periodically forfeits battles nobody has touched within
// timeout and retries archives that failed earlier. Battles are processed
// sequentially to keep SQLite writes serial.
func startIdleScanner(svc idleExpirer, timeout, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			n, err := svc.ExpireIdleBattles(timeout)
			if err != nil {
				logging.Error("idle scanner failed", err, nil)
				continue
			}
			if n > 0 {
				logging.Info("expired idle battles", logging.Fields{constants.LogFieldCount: n})
			}
			n, err = svc.RetryArchives()
			if err != nil {
				logging.Error("archive retry failed", err, nil)
				continue
			}
			if n > 0 {
				logging.Info("archived pending battles", logging.Fields{constants.LogFieldCount: n})
			}
		}
	}()
}
