package jobs

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueStatsRefresh(userID, examID string) error
	EnqueueRankRefresh(examID string) error
}
