// Package fldb keeps the signatures of baseline files in a bbolt database,
// so an unchanged baseline is not fingerprinted twice.
package fldb

import (
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var (
	ErrMiss    = errors.New("no cached signature")
	ErrCorrupt = errors.New("cached signature does not match its digest")
)

type Cache struct {
	db     *bolt.DB
	bucket []byte
}

func Open(path string, bucket string) (*Cache, error) {
	db, err := bolt.Open(path, 0666, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open cache %s", path)
	}
	// Create the bucket up front, readers never have to care
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "create bucket %s", bucket)
	}
	return &Cache{
		db:     db,
		bucket: []byte(bucket),
	}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) Put(key string, e *Entry) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(c.bucket).Put([]byte(key), e.Marshal())
	})
}

// Get returns ErrMiss when nothing is cached under key, ErrCorrupt when the entry fails its digest.
func (c *Cache) Get(key string) (*Entry, error) {
	var e *Entry
	err := c.db.View(func(tx *bolt.Tx) error {
		// The value is only valid inside the transaction, Unmarshal copies it
		v := tx.Bucket(c.bucket).Get([]byte(key))
		if v == nil {
			return ErrMiss
		}
		var err error
		e, err = Unmarshal(v)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !e.Valid() {
		return nil, errors.Wrap(ErrCorrupt, key)
	}
	return e, nil
}

func (c *Cache) Delete(key string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(c.bucket).Delete([]byte(key))
	})
}

// Keys lists the cached keys in byte order
func (c *Cache) Keys() ([]string, error) {
	keys := make([]string, 0)
	err := c.db.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket(c.bucket).Cursor()
		for k, _ := cur.First(); k != nil; k, _ = cur.Next() {
			keys = append(keys, string(k))
		}
		return nil
	})
	return keys, err
}
