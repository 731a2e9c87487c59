package search

import (
	"fmt"

	"github.com/jonesrussell/north-cloud/prospector/internal/logger"
	"github.com/robfig/cron/v3"
)

// DefaultResetSchedule resets exhausted keys at midnight on the first of each month.
const DefaultResetSchedule = "0 0 1 * *"

// ScheduleKeyReset starts a cron that periodically clears key exhaustion.
// The caller stops the returned cron.
func ScheduleKeyReset(spec string, keys *KeyRotator, log logger.Logger) (*cron.Cron, error) {
	if spec == "" {
		spec = DefaultResetSchedule
	}
	if log == nil {
		log = logger.NewNop()
	}

	// Standard 5-field parser (minute hour day month weekday)
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	c := cron.New(cron.WithParser(parser), cron.WithChain(cron.Recover(cron.DefaultLogger)))

	if _, err := c.AddFunc(spec, func() {
		log.Info("Scheduled search key reset")
		keys.Reset()
	}); err != nil {
		return nil, fmt.Errorf("invalid key reset schedule %q: %w", spec, err)
	}

	c.Start()
	return c, nil
}
