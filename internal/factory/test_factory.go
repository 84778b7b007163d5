package factory

import (
	"time"

	"github.com/founder-srm/foundathon/internal/dependencies/mocks"
	"github.com/founder-srm/foundathon/internal/dependencies/random"
	"github.com/founder-srm/foundathon/internal/services/auth"
	"github.com/founder-srm/foundathon/internal/services/lock"
	"github.com/founder-srm/foundathon/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// MockClock controls time for lock expiry and session tests
	MockClock *mocks.MockClock
}

// TestLockSecret is the signing secret used by test apps
var TestLockSecret = []byte("test-lock-secret")

// NewTestApp creates an App on memory storage with a controllable clock.
// Randomness stays real so generated IDs and session tokens are unique.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC))

	lockCfg := lock.Config{
		Secret: TestLockSecret,
		TTL:    5 * time.Minute,
	}

	app := newWithDependencies(store, mockClock, random.New(), 0, lockCfg, auth.DefaultConfig(), nil)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
