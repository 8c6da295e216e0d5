package catalog

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
)

var partsBucket = []byte("parts")

// Store is a catalog persisted in a bolt database. Parts are gob encoded and
// keyed by part number; iteration follows key order.
type Store struct {
	db *bolt.DB
}

// Open creates or opens the catalog database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(partsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: init %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put validates and stores parts in a single transaction.
func (s *Store) Put(parts ...Part) error {
	for _, p := range parts {
		if err := p.Validate(); err != nil {
			return err
		}
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(partsBucket)
		for _, p := range parts {
			data, err := marshal(p)
			if err != nil {
				return fmt.Errorf("catalog: encode %s: %w", p.Number, err)
			}
			if err := b.Put([]byte(p.Number), data); err != nil {
				return fmt.Errorf("catalog: store %s: %w", p.Number, err)
			}
		}
		return nil
	})
}

// Get returns the part with the given number, distinguishing a missing part
// (found == false, err == nil) from a storage failure.
func (s *Store) Get(number string) (p Part, found bool, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(partsBucket).Get([]byte(number))
		if data == nil {
			return nil
		}
		found = true
		return unmarshal(data, &p)
	})
	if err != nil {
		return Part{}, false, fmt.Errorf("catalog: load %s: %w", number, err)
	}
	return p, found, nil
}

// Lookup implements Catalog. Storage failures are reported as a miss.
func (s *Store) Lookup(number string) (Part, bool) {
	p, found, err := s.Get(number)
	if err != nil {
		return Part{}, false
	}
	return p, found
}

// Parts returns every stored part ordered by part number.
func (s *Store) Parts() ([]Part, error) {
	var parts []Part
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(partsBucket).ForEach(func(k, v []byte) error {
			var p Part
			if err := unmarshal(v, &p); err != nil {
				return fmt.Errorf("decode %s: %w", k, err)
			}
			parts = append(parts, p)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: list parts: %w", err)
	}
	return parts, nil
}

func marshal(v interface{}) ([]byte, error) {
	b := new(bytes.Buffer)
	if err := gob.NewEncoder(b).Encode(v); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func unmarshal(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
