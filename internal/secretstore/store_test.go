package secretstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, dir string) *Store {
	t.Helper()
	s, err := New(Options{
		Passphrase: "test-passphrase",
		Dir:        dir,
		NoKeyring:  true,
	})
	require.NoError(t, err)
	return s
}

func TestSetGetRoundTrip(t *testing.T) {
	s := newTestStore(t, t.TempDir())

	require.True(t, s.Set("greeting", map[string]any{"hello": "world"}))

	got, ok := s.Get("greeting")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"hello": "world"}, got)
}

func TestGetMissingKey(t *testing.T) {
	s := newTestStore(t, t.TempDir())

	_, ok := s.Get("never_written")
	assert.False(t, ok)
}

func TestCiphertextOnDisk(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(t, dir)

	require.True(t, s.Set("secret", "super-sensitive-value"))

	data, err := os.ReadFile(filepath.Join(dir, "secret.enc"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "super-sensitive-value")
}

func TestValuesSurviveRestart(t *testing.T) {
	dir := t.TempDir()

	first := newTestStore(t, dir)
	require.True(t, first.Set("counter", float64(42)))

	second := newTestStore(t, dir)
	got, ok := second.Get("counter")
	require.True(t, ok)
	assert.Equal(t, float64(42), got)
}

func TestWrongKeyUnreadable(t *testing.T) {
	dir := t.TempDir()

	first := newTestStore(t, dir)
	require.True(t, first.Set("secret", "value"))

	second, err := New(Options{Passphrase: "different-passphrase", Dir: dir, NoKeyring: true})
	require.NoError(t, err)

	_, ok := second.Get("secret")
	assert.False(t, ok)
}

func TestNonJSONPlaintextReturnedRaw(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(t, dir)

	// Write a ciphertext whose plaintext is not valid JSON.
	ciphertext, err := s.box.encrypt([]byte("plain old text"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "legacy.enc"), []byte(ciphertext), 0600))

	got, ok := s.Get("legacy")
	require.True(t, ok)
	assert.Equal(t, "plain old text", got)
}

func TestDeleteIdempotent(t *testing.T) {
	s := newTestStore(t, t.TempDir())

	require.True(t, s.Set("ephemeral", 1))
	assert.True(t, s.Delete("ephemeral"))
	assert.True(t, s.Delete("ephemeral"))

	_, ok := s.Get("ephemeral")
	assert.False(t, ok)
}

func TestMemoryOnlyWhenDirUnusable(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("not a directory"), 0600))

	s := newTestStore(t, blocked)
	assert.Nil(t, s.disk)
	assert.False(t, s.IsPersistent())
	assert.Equal(t, "memory", s.Info().Backend)

	require.True(t, s.Set("k", "v"))
	got, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestIsPersistent(t *testing.T) {
	t.Run("stable key with disk", func(t *testing.T) {
		s := newTestStore(t, t.TempDir())
		assert.True(t, s.IsPersistent())
		assert.Equal(t, KeySourceExplicit, s.Info().KeySource)
	})

	t.Run("random key is not persistent", func(t *testing.T) {
		t.Setenv(EnvPassphrase, "")
		s, err := New(Options{Dir: t.TempDir(), NoKeyring: true})
		require.NoError(t, err)
		assert.Equal(t, KeySourceRandom, s.Info().KeySource)
		assert.False(t, s.IsPersistent())
	})

	t.Run("env passphrase", func(t *testing.T) {
		t.Setenv(EnvPassphrase, "from-env")
		s, err := New(Options{Dir: t.TempDir(), NoKeyring: true})
		require.NoError(t, err)
		assert.Equal(t, KeySourceEnv, s.Info().KeySource)
		assert.True(t, s.IsPersistent())
	})
}

func TestCredentialHelpers(t *testing.T) {
	s := newTestStore(t, t.TempDir())

	_, ok := s.Credential()
	assert.False(t, ok)

	require.True(t, s.SaveCredential("client-id", "client-secret", "mypurecloud.de"))

	cred, ok := s.Credential()
	require.True(t, ok)
	assert.Equal(t, "client-id", cred.ClientID)
	assert.Equal(t, "client-secret", cred.ClientSecret)
	assert.Equal(t, "mypurecloud.de", cred.Region)
	assert.False(t, cred.StoredAt.IsZero())

	assert.True(t, s.DeleteCredential())
	_, ok = s.Credential()
	assert.False(t, ok)
}

func TestCredentialRestartScenarios(t *testing.T) {
	t.Run("same passphrase after restart", func(t *testing.T) {
		dir := t.TempDir()

		first := newTestStore(t, dir)
		require.True(t, first.SaveCredential("abc", "xyz", "us1"))

		second := newTestStore(t, dir)
		cred, ok := second.Credential()
		require.True(t, ok)
		assert.Equal(t, "abc", cred.ClientID)
		assert.Equal(t, "xyz", cred.ClientSecret)
		assert.Equal(t, "us1", cred.Region)
	})

	t.Run("process-random key is lost on restart", func(t *testing.T) {
		t.Setenv(EnvPassphrase, "")
		dir := t.TempDir()

		first, err := New(Options{Dir: dir, NoKeyring: true})
		require.NoError(t, err)
		require.True(t, first.SaveCredential("abc", "xyz", "us1"))

		second, err := New(Options{Dir: dir, NoKeyring: true})
		require.NoError(t, err)
		_, ok := second.Credential()
		assert.False(t, ok)
	})
}

func TestProfileLifecycle(t *testing.T) {
	s := newTestStore(t, t.TempDir())

	created, ok := s.SaveProfile(Profile{Name: "Ada", Email: "ada@example.com"})
	require.True(t, ok)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	created.Company = "Analytical Engines"
	updated, ok := s.SaveProfile(created)
	require.True(t, ok)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	profiles := s.Profiles()
	require.Len(t, profiles, 1)
	assert.Equal(t, "Analytical Engines", profiles[0].Company)
}

func TestActiveProfileClearedOnDelete(t *testing.T) {
	s := newTestStore(t, t.TempDir())

	a, _ := s.SaveProfile(Profile{Name: "A", Email: "a@example.com"})
	b, _ := s.SaveProfile(Profile{Name: "B", Email: "b@example.com"})

	require.True(t, s.SetActiveProfile(a.ID))

	// Deleting a non-active profile leaves the pointer alone.
	require.True(t, s.DeleteProfile(b.ID))
	id, ok := s.ActiveProfileID()
	require.True(t, ok)
	assert.Equal(t, a.ID, id)

	// Deleting the active profile clears it.
	require.True(t, s.DeleteProfile(a.ID))
	_, ok = s.ActiveProfileID()
	assert.False(t, ok)
}

func TestSetActiveProfileUnknownID(t *testing.T) {
	s := newTestStore(t, t.TempDir())
	assert.False(t, s.SetActiveProfile("no-such-id"))
}

func TestDeleteProfileMissing(t *testing.T) {
	s := newTestStore(t, t.TempDir())
	assert.False(t, s.DeleteProfile("no-such-id"))
}
