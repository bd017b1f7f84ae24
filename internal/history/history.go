// Package history keeps a journal of pipeline runs in a BoltDB file under
// the output root. Recording is best-effort: a journal failure never fails a
// pipeline run.
package history

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

const (
	// DBFileName is the journal file name inside the output root.
	DBFileName = "mcprep.db"

	// bucketName is the BoltDB bucket holding run records
	bucketName = "runs"
)

// Run is one recorded pipeline run.
type Run struct {
	// ID is a unique identifier for this run
	ID string `json:"id"`

	// Version is the release id the pipeline prepared
	Version string `json:"version"`

	// Target is the prepared side, "client" or "server"
	Target string `json:"target"`

	// Skipped lists the stages satisfied from cache
	Skipped []string `json:"skipped,omitempty"`

	// Remapped and Decompiled record which optional stages ran
	Remapped   bool `json:"remapped"`
	Decompiled bool `json:"decompiled"`

	// StartedAt is when the run began
	StartedAt time.Time `json:"started_at"`

	// Duration is the total wall-clock time of the run
	Duration time.Duration `json:"duration"`

	// Success indicates whether the run completed
	Success bool `json:"success"`

	// Error holds the terminal failure message for unsuccessful runs
	Error string `json:"error,omitempty"`
}

// Journal manages run records using BoltDB.
type Journal struct {
	db *bbolt.DB
}

// Open opens (creating if needed) the journal in dir.
func Open(dir string) (*Journal, error) {
	dbPath := filepath.Join(dir, DBFileName)

	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history bucket: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close closes the journal database.
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}

	return nil
}

// Record stores a run. Records are keyed by start time plus run id so a
// cursor scan returns them in chronological order.
func (j *Journal) Record(run Run) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to encode run record: %w", err)
	}

	key := run.StartedAt.UTC().Format(time.RFC3339Nano) + "/" + run.ID

	err = j.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		return b.Put([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store run record: %w", err)
	}

	return nil
}

// List returns all recorded runs, oldest first.
func (j *Journal) List() ([]Run, error) {
	var runs []Run

	err := j.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		return b.ForEach(func(_, v []byte) error {
			var run Run
			if err := json.Unmarshal(v, &run); err != nil {
				return err
			}

			runs = append(runs, run)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read run records: %w", err)
	}

	return runs, nil
}
