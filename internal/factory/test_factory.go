package factory

import (
	"time"

	"github.com/arcadely/arcade/internal/dependencies/mocks"
	"github.com/arcadely/arcade/internal/services/auth"
	"github.com/arcadely/arcade/internal/services/bonus"
	"github.com/arcadely/arcade/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	authCfg := auth.DefaultConfig()
	authCfg.TokenSecret = "test-secret"

	app := newWithDependencies(store, mockClock, mockRandom, authCfg, bonus.DefaultConfig())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
