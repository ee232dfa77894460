package secretstore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"os"

	"github.com/zalando/go-keyring"
	"golang.org/x/crypto/hkdf"
)

// EnvPassphrase is the environment variable holding the storage passphrase.
const EnvPassphrase = "GCADM_STORAGE_KEY"

// EnvNoKeyring disables the OS keyring lookup when set (tests, headless CI).
const EnvNoKeyring = "GCADM_NO_KEYRING"

const (
	keyLen         = 32
	keyringService = "gcadm"
	keyringUser    = "storage-passphrase"
)

// hkdf info string; changing it invalidates every existing ciphertext.
var keyInfo = []byte("gcadm storage key v1")

// KeySource identifies where the encryption key came from. Only the explicit,
// keyring, and environment sources survive a process restart.
type KeySource string

const (
	KeySourceExplicit KeySource = "explicit"
	KeySourceKeyring  KeySource = "keyring"
	KeySourceEnv      KeySource = "environment"
	KeySourceRandom   KeySource = "process-random"
)

// Stable reports whether the key can be re-derived after a restart.
func (s KeySource) Stable() bool {
	return s != KeySourceRandom
}

// cipherBox wraps an AEAD with knowledge of where its key came from.
type cipherBox struct {
	aead   cipher.AEAD
	source KeySource
}

// deriveKey derives a fixed-length key from a passphrase via HKDF-SHA256.
func deriveKey(passphrase string) []byte {
	r := hkdf.New(sha256.New, []byte(passphrase), nil, keyInfo)
	key := make([]byte, keyLen)
	if _, err := io.ReadFull(r, key); err != nil {
		panic("hkdf read failed: " + err.Error())
	}
	return key
}

// newCipherBox selects the encryption key. Precedence, first match wins:
// explicit passphrase, OS keyring entry, environment variable, then a
// process-random key that is never written anywhere.
func newCipherBox(explicit string, noKeyring bool) (*cipherBox, error) {
	if explicit != "" {
		return sealKey(deriveKey(explicit), KeySourceExplicit)
	}

	if !noKeyring && os.Getenv(EnvNoKeyring) == "" {
		if passphrase, err := keyring.Get(keyringService, keyringUser); err == nil && passphrase != "" {
			return sealKey(deriveKey(passphrase), KeySourceKeyring)
		}
	}

	if passphrase := os.Getenv(EnvPassphrase); passphrase != "" {
		return sealKey(deriveKey(passphrase), KeySourceEnv)
	}

	key := make([]byte, keyLen)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return sealKey(key, KeySourceRandom)
}

func sealKey(key []byte, source KeySource) (*cipherBox, error) {
	blk, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(blk)
	if err != nil {
		return nil, err
	}
	return &cipherBox{aead: aead, source: source}, nil
}

// encrypt seals plaintext as base64(nonce||ciphertext).
func (b *cipherBox) encrypt(plaintext []byte) (string, error) {
	nonce := make([]byte, b.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := b.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// decrypt opens a ciphertext produced by encrypt. Any integrity failure
// (wrong key, truncation, tampering, bad encoding) reports ok=false; it
// never returns partial plaintext.
func (b *cipherBox) decrypt(ciphertext string) ([]byte, bool) {
	sealed, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, false
	}
	if len(sealed) < b.aead.NonceSize() {
		return nil, false
	}
	nonce := sealed[:b.aead.NonceSize()]
	plaintext, err := b.aead.Open(nil, nonce, sealed[b.aead.NonceSize():], nil)
	if err != nil {
		return nil, false
	}
	return plaintext, true
}
