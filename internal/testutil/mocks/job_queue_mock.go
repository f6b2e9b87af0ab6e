package mocks

import "github.com/stretchr/testify/mock"

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueStatsRefresh(userID, examID string) error {
	args := m.Called(userID, examID)
	return args.Error(0)
}

func (m *MockJobQueue) EnqueueRankRefresh(examID string) error {
	args := m.Called(examID)
	return args.Error(0)
}
