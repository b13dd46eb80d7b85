package spdb

import "sync"

// DatabaseName is the schema every wrapper talks to.
const DatabaseName = "sp"

// ConnectionSettings identifies one MySQL server and account.
type ConnectionSettings struct {
	Host     string
	Port     int
	User     string
	Password string
}

var (
	defaultMu       sync.RWMutex
	defaultSettings ConnectionSettings
	defaultSet      bool
)

// SetDefaultConnectionSettings installs the process-wide settings read by
// NewDefault. Install once at startup; wrappers constructed before a later
// write keep the session they opened and do not observe the change.
func SetDefaultConnectionSettings(s ConnectionSettings) {
	defaultMu.Lock()
	defaultSettings = s
	defaultSet = true
	defaultMu.Unlock()
}

func defaultConnectionSettings() (ConnectionSettings, bool) {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultSettings, defaultSet
}
