// Package secretstore provides encrypted key-value storage for credentials
// and user profiles.
//
// Values are encrypted with AES-256-GCM before they leave memory. The store
// keeps every entry in an in-memory map and mirrors it to disk when a
// writable directory exists; reads prefer memory and fall back to disk so
// entries written by a previous process remain reachable.
package secretstore

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
)

// Well-known storage keys.
const (
	KeyCredentials   = "gc_credentials"
	KeyProfiles      = "user_profiles"
	KeyActiveProfile = "active_profile_id"
)

// Options control store construction. The zero value gives the default
// key-source chain and directory probe.
type Options struct {
	// Passphrase, when set, takes precedence over every other key source.
	Passphrase string
	// Dir pins the storage directory instead of probing home then temp.
	Dir string
	// NoKeyring skips the OS keyring lookup.
	NoKeyring bool
	Logger    *zap.Logger
}

// Store is an encrypted key-value store. Safe for concurrent use.
type Store struct {
	box  *cipherBox
	disk *diskBackend
	log  *zap.Logger

	mu  sync.RWMutex
	mem map[string]string // key -> ciphertext
}

// StorageInfo describes where and how the store keeps data.
type StorageInfo struct {
	Backend    string    `json:"backend"` // "disk" or "memory"
	Dir        string    `json:"dir,omitempty"`
	KeySource  KeySource `json:"key_source"`
	Persistent bool      `json:"persistent"`
}

// New builds a store, selecting the encryption key and probing for a
// writable directory. It never fails on storage problems; a store with no
// usable directory simply runs memory-only.
func New(opts Options) (*Store, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	box, err := newCipherBox(opts.Passphrase, opts.NoKeyring)
	if err != nil {
		return nil, err
	}

	disk := probeDisk(opts.Dir, log)
	if disk == nil {
		log.Warn("no writable storage directory, secrets will not persist")
	} else {
		log.Debug("secret storage ready",
			zap.String("dir", disk.dir),
			zap.String("key_source", string(box.source)))
	}

	return &Store{
		box:  box,
		disk: disk,
		log:  log,
		mem:  make(map[string]string),
	}, nil
}

// IsPersistent reports whether stored values survive a process restart:
// a disk directory is available and the key can be re-derived.
func (s *Store) IsPersistent() bool {
	return s.disk != nil && s.box.source.Stable()
}

// Info describes the active backend and key source.
func (s *Store) Info() StorageInfo {
	info := StorageInfo{
		Backend:    "memory",
		KeySource:  s.box.source,
		Persistent: s.IsPersistent(),
	}
	if s.disk != nil {
		info.Backend = "disk"
		info.Dir = s.disk.dir
	}
	return info
}

// Set encrypts and stores a value under key. The value is serialized as
// JSON before encryption. Returns false only when encryption itself fails;
// a disk write failure degrades to memory-only and still succeeds.
func (s *Store) Set(key string, value any) bool {
	plaintext, err := json.Marshal(value)
	if err != nil {
		s.log.Error("serialize failed", zap.String("key", key), zap.Error(err))
		return false
	}
	ciphertext, err := s.box.encrypt(plaintext)
	if err != nil {
		s.log.Error("encrypt failed", zap.String("key", key), zap.Error(err))
		return false
	}

	s.mu.Lock()
	s.mem[key] = ciphertext
	s.mu.Unlock()

	if s.disk != nil {
		if err := s.disk.write(key, ciphertext); err != nil {
			s.log.Warn("disk write failed, keeping value in memory",
				zap.String("key", key), zap.Error(err))
		}
	}
	return true
}

// Get retrieves and decrypts the value under key. Values that decrypt but
// are not valid JSON are returned as raw strings. The second return is
// false when the key is absent or the ciphertext cannot be opened.
func (s *Store) Get(key string) (any, bool) {
	ciphertext, ok := s.lookup(key)
	if !ok {
		return nil, false
	}

	plaintext, ok := s.box.decrypt(ciphertext)
	if !ok {
		s.log.Warn("decrypt failed, entry unreadable", zap.String("key", key))
		return nil, false
	}

	var value any
	if err := json.Unmarshal(plaintext, &value); err != nil {
		return string(plaintext), true
	}
	return value, true
}

// getJSON decodes the entry under key into out.
func (s *Store) getJSON(key string, out any) bool {
	ciphertext, ok := s.lookup(key)
	if !ok {
		return false
	}
	plaintext, ok := s.box.decrypt(ciphertext)
	if !ok {
		return false
	}
	return json.Unmarshal(plaintext, out) == nil
}

func (s *Store) lookup(key string) (string, bool) {
	s.mu.RLock()
	ciphertext, ok := s.mem[key]
	s.mu.RUnlock()
	if ok {
		return ciphertext, true
	}

	if s.disk == nil {
		return "", false
	}
	ciphertext, ok = s.disk.read(key)
	if !ok {
		return "", false
	}

	// Cache so subsequent reads skip the filesystem.
	s.mu.Lock()
	s.mem[key] = ciphertext
	s.mu.Unlock()
	return ciphertext, true
}

// Delete removes the entry from both backends. Deleting a missing key
// succeeds.
func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	delete(s.mem, key)
	s.mu.Unlock()

	if s.disk != nil {
		if err := s.disk.delete(key); err != nil {
			s.log.Warn("disk delete failed", zap.String("key", key), zap.Error(err))
			return false
		}
	}
	return true
}

// Credential is a stored OAuth client credential set.
type Credential struct {
	ClientID     string    `json:"client_id"`
	ClientSecret string    `json:"client_secret"`
	Region       string    `json:"region"`
	StoredAt     time.Time `json:"stored_at"`
}

// SaveCredential stores the credential set under the well-known key.
func (s *Store) SaveCredential(clientID, clientSecret, region string) bool {
	return s.Set(KeyCredentials, Credential{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Region:       region,
		StoredAt:     time.Now().UTC(),
	})
}

// Credential returns the stored credential set, if any.
func (s *Store) Credential() (*Credential, bool) {
	var cred Credential
	if !s.getJSON(KeyCredentials, &cred) {
		return nil, false
	}
	if cred.ClientID == "" || cred.ClientSecret == "" {
		return nil, false
	}
	return &cred, true
}

// DeleteCredential removes the stored credential set.
func (s *Store) DeleteCredential() bool {
	return s.Delete(KeyCredentials)
}

// Profile is a locally stored operator profile.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profiles returns all stored profiles.
func (s *Store) Profiles() []Profile {
	var profiles []Profile
	s.getJSON(KeyProfiles, &profiles)
	return profiles
}

// SaveProfile creates or updates a profile. A profile with an empty ID gets
// a fresh one assigned; the returned profile carries the final ID.
func (s *Store) SaveProfile(p Profile) (Profile, bool) {
	now := time.Now().UTC()
	profiles := s.Profiles()

	if p.ID == "" {
		p.ID = uuid.Must(uuid.NewV4()).String()
		p.CreatedAt = now
		p.UpdatedAt = now
		profiles = append(profiles, p)
	} else {
		found := false
		for i := range profiles {
			if profiles[i].ID == p.ID {
				p.CreatedAt = profiles[i].CreatedAt
				p.UpdatedAt = now
				profiles[i] = p
				found = true
				break
			}
		}
		if !found {
			if p.CreatedAt.IsZero() {
				p.CreatedAt = now
			}
			p.UpdatedAt = now
			profiles = append(profiles, p)
		}
	}

	if !s.Set(KeyProfiles, profiles) {
		return Profile{}, false
	}
	return p, true
}

// DeleteProfile removes a profile by ID. When the deleted profile was the
// active one, the active pointer is cleared as well.
func (s *Store) DeleteProfile(id string) bool {
	profiles := s.Profiles()
	kept := profiles[:0]
	removed := false
	for _, p := range profiles {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		return false
	}
	if !s.Set(KeyProfiles, kept) {
		return false
	}

	if active, ok := s.ActiveProfileID(); ok && active == id {
		s.Delete(KeyActiveProfile)
	}
	return true
}

// SetActiveProfile marks the profile with the given ID as active. The ID
// must belong to a stored profile.
func (s *Store) SetActiveProfile(id string) bool {
	for _, p := range s.Profiles() {
		if p.ID == id {
			return s.Set(KeyActiveProfile, id)
		}
	}
	return false
}

// ActiveProfileID returns the active profile ID, if one is set.
func (s *Store) ActiveProfileID() (string, bool) {
	var id string
	if !s.getJSON(KeyActiveProfile, &id) || id == "" {
		return "", false
	}
	return id, true
}

// ActiveProfile returns the active profile record.
func (s *Store) ActiveProfile() (*Profile, bool) {
	id, ok := s.ActiveProfileID()
	if !ok {
		return nil, false
	}
	for _, p := range s.Profiles() {
		if p.ID == id {
			return &p, true
		}
	}
	return nil, false
}
