package keyringstore

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"

	"github.com/jrsteele09/go-auth-client/sessions"
	"github.com/pkg/errors"
	"github.com/zalando/go-keyring"
)

const (
	// metadataUser holds the small JSON blob with tenants, preference and chunk counts
	metadataUser = "session"

	// MaxSecretLen is the largest value written in a single keyring entry. Windows
	// Credential Manager rejects more than 2560 bytes and macOS a little above 3000.
	MaxSecretLen = 2048
)

// Keyring is the part of go-keyring the store needs
type Keyring interface {
	Get(service, user string) (string, error)
	Set(service, user, secret string) error
	Delete(service, user string) error
}

type systemKeyring struct{}

func (systemKeyring) Get(service, user string) (string, error) {
	return keyring.Get(service, user)
}

func (systemKeyring) Set(service, user, secret string) error {
	return keyring.Set(service, user, secret)
}

func (systemKeyring) Delete(service, user string) error {
	return keyring.Delete(service, user)
}

var _ sessions.Store = (*KeyringStore)(nil)

// KeyringStore keeps the session in the OS keyring (macOS Keychain, Secret Service,
// Windows Credential Manager). Each token lives under its own user, split into
// MaxSecretLen chunks ("id_token", "id_token.1", ...); the legacy token field is derived
// from the id token on load rather than stored twice.
type KeyringStore struct {
	service string
	keyring Keyring
	mu      sync.Mutex
}

type Option func(*KeyringStore)

// WithKeyring replaces the OS keyring
func WithKeyring(kr Keyring) Option {
	return func(s *KeyringStore) {
		s.keyring = kr
	}
}

type metadata struct {
	Tenants         sessions.TenantSelection `json:"tenants"`
	LoginPreference string                   `json:"loginPreference,omitempty"`
	Parts           map[string]int           `json:"parts,omitempty"`
}

type tokenField struct {
	user string
	get  func(*sessions.Record) string
	set  func(*sessions.Record, string)
}

var tokenFields = []tokenField{
	{"id_token", func(r *sessions.Record) string { return r.IDToken }, func(r *sessions.Record, v string) { r.IDToken = v }},
	{"access_token", func(r *sessions.Record) string { return r.AccessToken }, func(r *sessions.Record, v string) { r.AccessToken = v }},
	{"refresh_token", func(r *sessions.Record) string { return r.RefreshToken }, func(r *sessions.Record, v string) { r.RefreshToken = v }},
}

func New(clientName string, opts ...Option) (*KeyringStore, error) {
	if strings.TrimSpace(clientName) == "" {
		return nil, errors.New("[keyringstore.New] client name is required")
	}
	s := &KeyringStore{service: clientName, keyring: systemKeyring{}}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *KeyringStore) Load(_ context.Context) (*sessions.Record, error) {
	record, _, err := s.read()
	return record, err
}

func (s *KeyringStore) Update(_ context.Context, mutate sessions.Mutator) (*sessions.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, meta, err := s.read()
	if err != nil {
		return nil, err
	}
	if err := mutate(record); err != nil {
		return nil, err
	}
	if record.IDToken == "" {
		record.IDToken = record.LegacyAccessToken
	}
	record.LegacyAccessToken = record.IDToken

	next := metadata{
		Tenants:         record.Tenants,
		LoginPreference: record.LoginPreference,
		Parts:           map[string]int{},
	}
	for _, f := range tokenFields {
		parts, err := s.writeChunks(f.user, f.get(record), meta.Parts[f.user])
		if err != nil {
			return nil, err
		}
		if parts > 0 {
			next.Parts[f.user] = parts
		}
	}

	data, err := json.Marshal(next)
	if err != nil {
		return nil, errors.Wrap(err, "KeyringStore.Update Marshal")
	}
	if err := s.keyring.Set(s.service, metadataUser, string(data)); err != nil {
		return nil, errors.Wrap(err, "KeyringStore.Update Set metadata")
	}
	return record.Clone(), nil
}

func (s *KeyringStore) read() (*sessions.Record, metadata, error) {
	var meta metadata
	secret, err := s.keyring.Get(s.service, metadataUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return &sessions.Record{}, meta, nil
	}
	if err != nil {
		return nil, meta, errors.Wrap(err, "KeyringStore.read Get")
	}
	if err := json.Unmarshal([]byte(secret), &meta); err != nil {
		return nil, meta, errors.Wrap(err, "KeyringStore.read Unmarshal")
	}

	record := &sessions.Record{
		Tenants:         meta.Tenants,
		LoginPreference: meta.LoginPreference,
	}
	for _, f := range tokenFields {
		value, err := s.readChunks(f.user, meta.Parts[f.user])
		if err != nil {
			return nil, meta, err
		}
		f.set(record, value)
	}
	record.LegacyAccessToken = record.IDToken
	return record, meta, nil
}

func (s *KeyringStore) readChunks(user string, parts int) (string, error) {
	var sb strings.Builder
	for i := 0; i < parts; i++ {
		chunk, err := s.keyring.Get(s.service, chunkUser(user, i))
		if err != nil {
			return "", errors.Wrapf(err, "KeyringStore.read Get %s", chunkUser(user, i))
		}
		sb.WriteString(chunk)
	}
	return sb.String(), nil
}

// writeChunks stores value and removes chunks left over from a longer previous value
func (s *KeyringStore) writeChunks(user, value string, previous int) (int, error) {
	parts := 0
	for start := 0; start < len(value); start += MaxSecretLen {
		end := min(start+MaxSecretLen, len(value))
		if err := s.keyring.Set(s.service, chunkUser(user, parts), value[start:end]); err != nil {
			return 0, errors.Wrapf(err, "KeyringStore.Update Set %s", chunkUser(user, parts))
		}
		parts++
	}
	for i := parts; i < previous; i++ {
		err := s.keyring.Delete(s.service, chunkUser(user, i))
		if err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return 0, errors.Wrapf(err, "KeyringStore.Update Delete %s", chunkUser(user, i))
		}
	}
	return parts, nil
}

func chunkUser(user string, i int) string {
	if i == 0 {
		return user
	}
	return user + "." + strconv.Itoa(i)
}
