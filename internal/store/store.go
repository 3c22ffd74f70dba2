package store

import (
	"errors"
	"strconv"
	"strings"
	"sync"
)

// ErrNotFound is returned by Get when no value is stored under a key.
var ErrNotFound = errors.New("store: key not found")

// KV is a durable string key-value store.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// IndexKey returns the key holding the last viewed card index of a deck.
func IndexKey(deckID string) string {
	return "revisionapp:deck:" + deckID + ":index"
}

// LoadIndex returns the saved card index of a deck. Missing, unreadable or
// non-numeric values all count as 0; the caller clamps the result.
func LoadIndex(kv KV, deckID string) int {
	if kv == nil {
		return 0
	}
	raw, err := kv.Get(IndexKey(deckID))
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// SaveIndex stores the card index of a deck as base-10 text.
func SaveIndex(kv KV, deckID string, index int) error {
	if kv == nil {
		return nil
	}
	return kv.Set(IndexKey(deckID), strconv.Itoa(index))
}

// ResetIndex forgets the saved card index of a deck.
func ResetIndex(kv KV, deckID string) error {
	if kv == nil {
		return nil
	}
	return kv.Delete(IndexKey(deckID))
}

// Memory is an in-process KV.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
