package app

import (
	"os"
	"strconv"
	"sync"
	"sync/atomic"
)

const testModeEnv = "RENT_TEST_MODE"

var (
	testMode     atomic.Bool
	testModeOnce sync.Once
)

func loadTestMode() {
	on, _ := strconv.ParseBool(os.Getenv(testModeEnv))
	testMode.Store(on)
}

// InTestMode reports whether binaries should return before touching
// PostgreSQL, Redis or the network. RENT_TEST_MODE accepts any value
// strconv.ParseBool understands.
func InTestMode() bool {
	testModeOnce.Do(loadTestMode)
	return testMode.Load()
}

// RefreshTestMode re-reads RENT_TEST_MODE.
func RefreshTestMode() {
	testModeOnce.Do(func() {})
	loadTestMode()
}
