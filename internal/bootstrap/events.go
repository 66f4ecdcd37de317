package bootstrap

import (
	"github.com/cybermarket/server/internal/event"
	"github.com/cybermarket/server/internal/profile"
)

// SetupEventBus creates the in-process event bus and registers the standing
// subscribers. Profile listens for purchases, loadout changes and profile
// edits so achievements unlock without the client asking.
func SetupEventBus(profileSvc profile.Service) event.Bus {
	bus := event.NewMemoryBus()
	profileSvc.Subscribe(bus)
	return bus
}
