package identity

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/donothingclub/donothing/internal/dependencies/random"
)

const (
	idPrefix       = "u_"
	suffixLength   = 8
	suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Store resolves and persists a stable anonymous identifier across runs.
// The identifier lives in a single file; on first use one is generated from
// a time-based prefix plus a random suffix and written out. If the file
// cannot be written, a fresh identifier is handed out on every call - a
// documented degradation, not a fatal condition.
type Store struct {
	path   string
	clock  clockwork.Clock
	random random.Random
	logger *slog.Logger
}

// NewStore creates a Store backed by the file at path
func NewStore(path string, clock clockwork.Clock, random random.Random, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		clock:  clock,
		random: random,
		logger: logger,
	}
}

// DefaultPath returns the default identity file location
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".donothing/identity"
	}
	return filepath.Join(home, ".donothing", "identity")
}

// GetOrCreate returns the persisted identifier, generating and persisting
// one first if none exists yet
func (s *Store) GetOrCreate() string {
	if data, err := os.ReadFile(s.path); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id
		}
	} else if !os.IsNotExist(err) {
		s.logger.Warn("could not read identity file", slog.String("error", err.Error()))
	}

	id := s.generate()
	if err := s.persist(id); err != nil {
		s.logger.Warn("could not persist identifier, it will not survive this run",
			slog.String("error", err.Error()))
	}
	return id
}

// generate builds an identifier from the current time and a random suffix
func (s *Store) generate() string {
	ts := strconv.FormatInt(s.clock.Now().UnixMilli(), 36)
	return idPrefix + ts + s.random.String(suffixLength, suffixAlphabet)
}

func (s *Store) persist(id string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(id), 0600)
}
