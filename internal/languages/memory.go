package languages

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-translatable/languages"
	"github.com/google/uuid"
)

// MemoryLanguageRepository stores languages by code for tests and database-less setups.
type MemoryLanguageRepository struct {
	mu        sync.RWMutex
	languages map[string]*languages.Language
}

var _ Repository = (*MemoryLanguageRepository)(nil)

// NewMemoryLanguageRepository constructs the repository.
func NewMemoryLanguageRepository() *MemoryLanguageRepository {
	return &MemoryLanguageRepository{
		languages: make(map[string]*languages.Language),
	}
}

// Put inserts or replaces a language.
func (m *MemoryLanguageRepository) Put(language *languages.Language) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *language
	m.languages[strings.ToLower(language.Code)] = &copied
}

// GetByCode resolves a language by code (case-insensitive).
func (m *MemoryLanguageRepository) GetByCode(_ context.Context, code string) (*languages.Language, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lang, ok := m.languages[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return nil, &languages.NotFoundError{Code: code}
	}
	copied := *lang
	return &copied, nil
}

// Create stores a new language, assigning an identifier when missing.
func (m *MemoryLanguageRepository) Create(_ context.Context, record *languages.Language) (*languages.Language, error) {
	if record == nil || strings.TrimSpace(record.Code) == "" {
		return nil, languages.ErrCodeRequired
	}
	copied := *record
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}

	m.mu.Lock()
	m.languages[strings.ToLower(copied.Code)] = &copied
	m.mu.Unlock()

	out := copied
	return &out, nil
}

// List returns all languages ordered by code.
func (m *MemoryLanguageRepository) List(context.Context) ([]*languages.Language, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*languages.Language, 0, len(m.languages))
	for _, lang := range m.languages {
		copied := *lang
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}
