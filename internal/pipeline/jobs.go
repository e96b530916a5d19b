package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/argtex/internal/document"
	"github.com/google/uuid"
)

// JobStatus represents the state of a translation job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusExtracting JobStatus = "extracting"
	StatusParsing    JobStatus = "parsing"
	StatusRendering  JobStatus = "rendering"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Job tracks the translation of one uploaded file.
type Job struct {
	mu sync.Mutex

	ID       string          `json:"job_id"`
	Filename string          `json:"filename"`
	Format   document.Format `json:"format"`
	Status   JobStatus       `json:"status"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	output   []byte
	title    string
	sections int
	premises int
	failure  *Failure
	duration time.Duration
}

// NewJob creates a queued job with a fresh id.
func NewJob(filename string, data []byte, format document.Format) *Job {
	now := time.Now()
	return &Job{
		ID:        uuid.NewString(),
		Filename:  filename,
		Format:    format,
		Status:    StatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
		fileData:  data,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Len returns the number of jobs held.
func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		updated := job.UpdatedAt
		job.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.UpdatedAt = time.Now()
}

// SetContentHash records the hash of the extracted notation.
func (j *Job) SetContentHash(hash string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ContentHash = hash
}

// Complete stores the rendered output and marks the job completed.
func (j *Job) Complete(output []byte, doc *document.Document, took time.Duration) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.output = output
	j.title = doc.Title
	j.sections = len(doc.Sections)
	j.premises = doc.PremiseCount()
	j.duration = took
	j.fileData = nil
	j.Status = StatusCompleted
	j.UpdatedAt = time.Now()
}

// Fail records why the job stopped and marks it failed.
func (j *Job) Fail(f *Failure) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.failure = f
	j.fileData = nil
	j.Status = StatusFailed
	j.UpdatedAt = time.Now()
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// Output returns the rendered document once the job has completed.
func (j *Job) Output() ([]byte, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.output, j.Status == StatusCompleted
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string          `json:"job_id"`
	Filename    string          `json:"filename"`
	Format      document.Format `json:"format"`
	Status      JobStatus       `json:"status"`
	Title       string          `json:"title,omitempty"`
	Sections    int             `json:"sections"`
	Premises    int             `json:"premises"`
	ContentHash string          `json:"content_hash,omitempty"`
	DurationMs  int64           `json:"duration_ms"`
	Error       *Failure        `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	return JobSnapshot{
		ID:          j.ID,
		Filename:    j.Filename,
		Format:      j.Format,
		Status:      j.Status,
		Title:       j.title,
		Sections:    j.sections,
		Premises:    j.premises,
		ContentHash: j.ContentHash,
		DurationMs:  j.duration.Milliseconds(),
		Error:       j.failure,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
