// Package storage persists the training samples the trainer fits on.
// It uses BoltDB as the underlying storage engine; samples are kept in a single
// bucket in insertion order.
package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

const (
	dbFile        = "houseprice.db"
	samplesBucket = "samples" // Bucket name for training samples
)

// Sample is one observed (surface, pieces) -> prix row.
type Sample struct {
	Surface float64 `json:"surface"`
	Pieces  float64 `json:"pieces"`
	Prix    float64 `json:"prix"`
}

// Store provides persistent storage for training samples using BoltDB.
type Store struct {
	db *bbolt.DB
}

// New opens (or creates) the database under dataPath and makes sure the
// samples bucket exists. The directory must already exist.
func New(dataPath string) (*Store, error) {
	dbPath := filepath.Join(dataPath, dbFile)

	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(samplesBucket)); err != nil {
			return fmt.Errorf("create samples bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database. Calling it more than once is a no-op.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// PutSamples appends samples in a single transaction.
func (s *Store) PutSamples(samples []Sample) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(samplesBucket))

		for _, sample := range samples {
			seq, err := b.NextSequence()
			if err != nil {
				return fmt.Errorf("next sequence: %w", err)
			}

			data, err := json.Marshal(sample)
			if err != nil {
				return fmt.Errorf("marshal sample: %w", err)
			}

			if err := b.Put(sequenceKey(seq), data); err != nil {
				return fmt.Errorf("put sample: %w", err)
			}
		}
		return nil
	})
}

// Samples returns every stored sample in insertion order.
func (s *Store) Samples() ([]Sample, error) {
	var samples []Sample

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(samplesBucket))
		return b.ForEach(func(k, v []byte) error {
			var sample Sample
			if err := json.Unmarshal(v, &sample); err != nil {
				return fmt.Errorf("decode sample %s: %w", k, err)
			}
			samples = append(samples, sample)
			return nil
		})
	})

	return samples, err
}

// Count returns the number of stored samples.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket([]byte(samplesBucket)).Stats().KeyN
		return nil
	})
	return n, err
}

// Reset removes every stored sample.
func (s *Store) Reset() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(samplesBucket)); err != nil {
			return fmt.Errorf("delete samples bucket: %w", err)
		}
		if _, err := tx.CreateBucket([]byte(samplesBucket)); err != nil {
			return fmt.Errorf("create samples bucket: %w", err)
		}
		return nil
	})
}

// sequenceKey zero-pads the sequence so byte order matches insertion order.
func sequenceKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("%020d", seq))
}
