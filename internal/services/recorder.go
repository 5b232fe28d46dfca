package services

import (
	"log"
	"sync"

	"mockmate/interview-api/internal/models"
	"mockmate/interview-api/internal/repositories"
)

// Recorder persists audit copies of evaluated answers in the background.
// Persistence is deliberately not atomic with the in-memory session
// mutation: a write failure is logged and never surfaces to the caller.
type Recorder interface {
	Start()
	Stop()
	RecordInterview(rec *models.InterviewRecord)
	RecordSession(rec *models.SessionRecord)
}

type auditJob struct {
	interview *models.InterviewRecord
	session   *models.SessionRecord
}

type recorder struct {
	recordRepo  repositories.RecordRepository
	jobQueue    chan auditJob
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewRecorder(recordRepo repositories.RecordRepository, concurrency, queueSize int) Recorder {
	return &recorder{
		recordRepo:  recordRepo,
		jobQueue:    make(chan auditJob, queueSize),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Recorder.
func (r *recorder) Start() {
	log.Printf("🚀 Starting recorder with %d workers\n", r.concurrency)

	for i := 0; i < r.concurrency; i++ {
		r.wg.Add(1)
		go r.processJobs(i + 1)
	}
}

// Stop implements Recorder. Queued records are flushed before returning.
func (r *recorder) Stop() {
	log.Println("🛑 Stopping recorder...")
	close(r.stopChan)
	r.wg.Wait()
	log.Println("✅ Recorder stopped")
}

// RecordInterview implements Recorder.
func (r *recorder) RecordInterview(rec *models.InterviewRecord) {
	r.enqueue(auditJob{interview: rec})
}

// RecordSession implements Recorder.
func (r *recorder) RecordSession(rec *models.SessionRecord) {
	r.enqueue(auditJob{session: rec})
}

func (r *recorder) enqueue(job auditJob) {
	select {
	case r.jobQueue <- job:
	default:
		log.Println("⚠️  Recorder queue full, dropping audit record")
	}
}

func (r *recorder) processJobs(workerID int) {
	defer r.wg.Done()

	for {
		select {
		case job := <-r.jobQueue:
			r.write(workerID, job)
		case <-r.stopChan:
			// Drain what is already queued, then exit
			for {
				select {
				case job := <-r.jobQueue:
					r.write(workerID, job)
				default:
					return
				}
			}
		}
	}
}

func (r *recorder) write(workerID int, job auditJob) {
	var err error
	switch {
	case job.interview != nil:
		err = r.recordRepo.CreateInterviewRecord(job.interview)
	case job.session != nil:
		err = r.recordRepo.CreateSessionRecord(job.session)
	}
	if err != nil {
		log.Printf("❌ Recorder worker #%d failed to persist record: %v\n", workerID, err)
	}
}
