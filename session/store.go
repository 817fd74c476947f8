package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/phowdecayed/hacktiv8-laravel-final-fe/models"
)

var (
	bucketSession = []byte("session")
	keyToken      = []byte("token")
	keyUser       = []byte("user")
)

// Store persists the (token, user) pair between runs, the way a browser
// keeps them in localStorage. Backed by a single bbolt file.
type Store struct {
	db *bolt.DB
}

func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSession)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init session store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Save writes the token and user snapshot.
func (s *Store) Save(token string, user *models.User) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSession)
		if err := b.Put(keyToken, []byte(token)); err != nil {
			return err
		}
		if user == nil {
			return b.Delete(keyUser)
		}
		payload, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("encode session user: %w", err)
		}
		return b.Put(keyUser, payload)
	})
}

// Load returns the cached token and user. A missing session yields an empty
// token and nil user, not an error.
func (s *Store) Load() (string, *models.User, error) {
	var token string
	var user *models.User
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSession)
		token = string(b.Get(keyToken))
		if raw := b.Get(keyUser); len(raw) > 0 {
			var u models.User
			if err := json.Unmarshal(raw, &u); err != nil {
				return fmt.Errorf("decode session user: %w", err)
			}
			user = &u
		}
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Clear removes the cached session.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSession)
		if err := b.Delete(keyToken); err != nil {
			return err
		}
		return b.Delete(keyUser)
	})
}
