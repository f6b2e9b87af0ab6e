package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examace/examace/internal/catalog"
	"github.com/examace/examace/internal/services"
	"github.com/examace/examace/internal/session"
	"github.com/examace/examace/internal/testutil/mocks"
)

func newSessionService(t *testing.T) services.SessionService {
	t.Helper()

	questions, err := catalog.SeedQuestions()
	require.NoError(t, err)
	cat := catalog.Build(questions, catalog.Options{Seed: 1})

	attemptSvc := services.NewAttemptService(new(mocks.MockAttemptRepository), new(mocks.MockJobQueue))
	return services.NewSessionService(cat, session.NewRegistry(), attemptSvc)
}

func TestSessionService_StartSession(t *testing.T) {
	svc := newSessionService(t)

	snap, err := svc.StartSession(context.Background(), "u1", "ssc-cgl", "mock", "mock-1", "")
	require.NoError(t, err)
	assert.NotEmpty(t, snap.ID)
	assert.NotZero(t, snap.Total)

	require.NoError(t, svc.Abandon(context.Background(), "u1", snap.ID))
}

func TestSessionService_StartSessionWithCatalogMiss(t *testing.T) {
	svc := newSessionService(t)

	// Unknown ids at any level start an empty session with the default
	// duration instead of failing.
	cases := []struct {
		name                     string
		examID, sectionID, testID string
	}{
		{"unknown exam", "upsc", "mock", "mock-1"},
		{"unknown section", "ssc-cgl", "sprint", "mock-1"},
		{"unknown test", "ssc-cgl", "mock", "mock-99"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := svc.StartSession(context.Background(), "u1", tt.examID, tt.sectionID, tt.testID, "")
			require.NoError(t, err)
			assert.NotEmpty(t, snap.ID)
			assert.Zero(t, snap.Total)

			require.NoError(t, svc.Abandon(context.Background(), "u1", snap.ID))
		})
	}
}
