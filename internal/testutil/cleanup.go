package testutil

import (
	"errors"
	"fmt"
	"sync"

	"github.com/thruflo/todomvc-e2e/internal/browser"
)

// openDrivers tracks browsers launched by tests so TestMain can close any
// that a failing test left behind.
var (
	openDrivers = make(map[string]browser.Driver)
	driversMu   sync.Mutex
)

// RegisterDriver records drv under name for CloseAllDrivers.
func RegisterDriver(name string, drv browser.Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()
	openDrivers[name] = drv
}

// UnregisterDriver forgets name. Use it after closing the driver yourself.
func UnregisterDriver(name string) {
	driversMu.Lock()
	defer driversMu.Unlock()
	delete(openDrivers, name)
}

// RegisteredDrivers returns the names of the drivers still open.
func RegisteredDrivers() []string {
	driversMu.Lock()
	defer driversMu.Unlock()
	names := make([]string, 0, len(openDrivers))
	for name := range openDrivers {
		names = append(names, name)
	}
	return names
}

// CloseAllDrivers closes every registered driver and returns the joined
// close errors. Closed drivers leave the registry even when Close fails,
// since a second Close would not succeed either.
func CloseAllDrivers() error {
	driversMu.Lock()
	drivers := openDrivers
	openDrivers = make(map[string]browser.Driver)
	driversMu.Unlock()

	var errs []error
	for name, drv := range drivers {
		if err := drv.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
