package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mockmate/interview-api/internal/models"
)

type countingRecordRepo struct {
	mu         sync.Mutex
	interviews []models.InterviewRecord
	sessions   []models.SessionRecord
}

func (r *countingRecordRepo) CreateInterviewRecord(rec *models.InterviewRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interviews = append(r.interviews, *rec)
	return nil
}

func (r *countingRecordRepo) CreateSessionRecord(rec *models.SessionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = append(r.sessions, *rec)
	return nil
}

func (r *countingRecordRepo) FindInterviewRecordsByUser(string) ([]models.InterviewRecord, error) {
	return nil, nil
}

func TestRecorder_FlushesOnStop(t *testing.T) {
	repo := &countingRecordRepo{}
	rec := NewRecorder(repo, 2, 16)
	rec.Start()

	for i := 0; i < 5; i++ {
		rec.RecordInterview(&models.InterviewRecord{UserEmail: "a@example.com"})
		rec.RecordSession(&models.SessionRecord{UserEmail: "a@example.com"})
	}

	rec.Stop()

	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Len(t, repo.interviews, 5)
	assert.Len(t, repo.sessions, 5)
}

func TestRecorder_QueueFullDropsInsteadOfBlocking(t *testing.T) {
	repo := &countingRecordRepo{}
	rec := NewRecorder(repo, 1, 1)
	// Not started: nothing drains the queue, the second enqueue must not block.

	done := make(chan struct{})
	go func() {
		rec.RecordInterview(&models.InterviewRecord{})
		rec.RecordInterview(&models.InterviewRecord{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("enqueue blocked on a full queue")
	}
}
