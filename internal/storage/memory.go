package storage

import (
	"strconv"
	"sync"
)

// Memory is an in-process Backend used by --driver memory runs and tests.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string]string)}
}

func (m *Memory) Get(profile, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[profile][key]
	return v, ok, nil
}

func (m *Memory) Set(profile, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.data[profile]
	if !ok {
		p = make(map[string]string)
		m.data[profile] = p
	}
	p[key] = value
	return nil
}

func (m *Memory) SetMax(profile, key string, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.data[profile]
	if !ok {
		p = make(map[string]string)
		m.data[profile] = p
	}
	if raw, ok := p[key]; ok {
		if stored, err := strconv.Atoi(raw); err == nil && stored >= 1 && stored >= value {
			return nil
		}
	}
	p[key] = strconv.Itoa(value)
	return nil
}

func (m *Memory) Remove(profile, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data[profile], key)
	return nil
}

func (m *Memory) Lookup(key string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	values := make(map[string]string)
	for profile, p := range m.data {
		if v, ok := p[key]; ok {
			values[profile] = v
		}
	}
	return values, nil
}

func (m *Memory) Close() error {
	return nil
}
