package cache

import (
	"errors"
	"sync"
	"time"
)

// CacheDev replaces Redis for local development and unit tests.
type CacheDev struct {
	mu      sync.Mutex
	data    map[string]string
	expires map[string]time.Time
}

func NewDevCache() *CacheDev {
	return &CacheDev{
		data:    make(map[string]string),
		expires: make(map[string]time.Time),
	}
}

func (d *CacheDev) Get(key string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.get(key)
}

func (d *CacheDev) get(key string) (string, error) {
	if exp, ok := d.expires[key]; ok && time.Now().After(exp) {
		delete(d.data, key)
		delete(d.expires, key)
	}

	val, ok := d.data[key]
	if !ok {
		return "", errors.New("key not found in cache")
	}
	return val, nil
}

func (d *CacheDev) SetTTL(key, value string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.data[key] = value
	d.expires[key] = time.Now().Add(ttl)
	return nil
}

func (d *CacheDev) Consume(key string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	val, err := d.get(key)
	if err != nil {
		return "", err
	}

	delete(d.data, key)
	delete(d.expires, key)
	return val, nil
}
