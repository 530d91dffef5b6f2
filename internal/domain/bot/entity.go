package bot

import (
	"time"

	"github.com/google/uuid"
)

// Bot is the single mobile charging unit. Its busy flag mirrors the
// at-most-one-running-job invariant: busy is true exactly while one job
// holds it. State transitions happen as atomic check-and-set updates in
// the repository, so this type only exposes the persisted record.
type Bot struct {
	currentSpotID  *uuid.UUID
	batteryPercent *int
	maxPowerKW     float64
	busy           bool
	lastUpdate     time.Time
}

func Reconstruct(currentSpotID *uuid.UUID, batteryPercent *int, maxPowerKW float64, busy bool, lastUpdate time.Time) *Bot {
	return &Bot{
		currentSpotID:  currentSpotID,
		batteryPercent: batteryPercent,
		maxPowerKW:     maxPowerKW,
		busy:           busy,
		lastUpdate:     lastUpdate,
	}
}

func (b *Bot) CurrentSpotID() *uuid.UUID { return b.currentSpotID }
func (b *Bot) BatteryPercent() *int      { return b.batteryPercent }
func (b *Bot) MaxPowerKW() float64       { return b.maxPowerKW }
func (b *Bot) Busy() bool                { return b.busy }
func (b *Bot) LastUpdate() time.Time     { return b.lastUpdate }
