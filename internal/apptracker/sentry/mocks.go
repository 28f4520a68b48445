package sentry

import (
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/mock"
)

type MockSentry struct {
	mock.Mock
}

func (m *MockSentry) CaptureMessage(message string) *sentry.EventID {
	args := m.Called(message)
	return args.Get(0).(*sentry.EventID)
}

func (m *MockSentry) CaptureException(exception error) *sentry.EventID {
	args := m.Called(exception)
	return args.Get(0).(*sentry.EventID)
}

func (m *MockSentry) Init(options sentry.ClientOptions) error {
	args := m.Called(options)
	return args.Error(0)
}

func (m *MockSentry) Flush(timeout time.Duration) bool {
	args := m.Called(timeout)
	return args.Bool(0)
}

// setupMockSentry swaps the sentry package functions for a mock until the test ends.
func setupMockSentry(t *testing.T) *MockSentry {
	t.Helper()

	mockSentry := &MockSentry{}

	originalInitFunc := InitFunc
	originalFlushFunc := FlushFunc
	originalCaptureMessageFunc := captureMessageFunc
	originalCaptureExceptionFunc := captureExceptionFunc

	InitFunc = mockSentry.Init
	FlushFunc = mockSentry.Flush
	captureMessageFunc = mockSentry.CaptureMessage
	captureExceptionFunc = mockSentry.CaptureException

	t.Cleanup(func() {
		InitFunc = originalInitFunc
		FlushFunc = originalFlushFunc
		captureMessageFunc = originalCaptureMessageFunc
		captureExceptionFunc = originalCaptureExceptionFunc
		mockSentry.AssertExpectations(t)
	})

	return mockSentry
}
