// Package store keeps the transactions fetched from the gateway, keyed by
// transaction reference. It runs either purely in memory or on top of a
// single-file bbolt database so the last fetched set survives a restart.
package store

import (
	"encoding/json"
	"fmt"
	"sync"

	bolt "go.etcd.io/bbolt"
	"golang.org/x/exp/slog"
)

// ReferenceField is the record key every gateway transaction carries.
const ReferenceField = "transactionreference"

var bucketName = []byte("transactions")

// Transaction is one gateway transaction record: raw field name → value.
type Transaction map[string]string

// Reference returns the transaction's unique gateway reference.
func (t Transaction) Reference() string {
	return t[ReferenceField]
}

// Store holds transactions in insertion order with O(1) lookup by
// reference. With a db attached, writes go through to disk as well.
type Store struct {
	mu    sync.RWMutex
	order []string
	byRef map[string]Transaction

	db     *bolt.DB
	logger *slog.Logger
}

// NewMemory returns a store without durability.
func NewMemory(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		byRef:  make(map[string]Transaction),
		logger: logger.With(slog.String("component", "store")),
	}
}

// Open returns a store backed by the bbolt file at path, creating it when
// missing and loading any previously stored transactions.
func Open(path string, logger *slog.Logger) (*Store, error) {
	s := NewMemory(logger)
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening transaction store: %w", err)
	}
	s.db = db
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return err
		}
		return b.ForEach(func(k, v []byte) error {
			var txn Transaction
			if err := json.Unmarshal(v, &txn); err != nil {
				// A bad record should not keep the client from starting.
				s.logger.Warn("skipping undecodable stored transaction",
					slog.String("ref", string(k)), slog.Any("err", err))
				return nil
			}
			s.put(txn)
			return nil
		})
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("loading transaction store: %w", err)
	}
	return s, nil
}

// Close releases the underlying database, if any.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// put indexes a transaction; caller holds the lock (or is still single-owner).
func (s *Store) put(txn Transaction) {
	ref := txn.Reference()
	if _, ok := s.byRef[ref]; !ok {
		s.order = append(s.order, ref)
	}
	s.byRef[ref] = txn
}

// Add upserts the given transactions. Records without a reference are
// logged and skipped rather than failing the whole batch.
func (s *Store) Add(txns []Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []Transaction
	for _, txn := range txns {
		if txn.Reference() == "" {
			s.logger.Warn("dropping transaction without a reference")
			continue
		}
		s.put(txn)
		kept = append(kept, txn)
	}
	if s.db == nil || len(kept) == 0 {
		return nil
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		for _, txn := range kept {
			data, err := json.Marshal(txn)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(txn.Reference()), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("persisting transactions: %w", err)
	}
	return nil
}

// Get returns the transaction with the given reference.
func (s *Store) Get(ref string) (Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	txn, ok := s.byRef[ref]
	return txn, ok
}

// All returns every stored transaction in insertion order.
func (s *Store) All() []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Transaction, 0, len(s.order))
	for _, ref := range s.order {
		out = append(out, s.byRef[ref])
	}
	return out
}

// Len returns the number of stored transactions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Clear drops every transaction, in memory and on disk.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.byRef = make(map[string]Transaction)
	if s.db == nil {
		return nil
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketName); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketName)
		return err
	})
	if err != nil {
		return fmt.Errorf("clearing transaction store: %w", err)
	}
	return nil
}
