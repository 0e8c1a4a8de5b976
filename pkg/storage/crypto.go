package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// MinPasswordLength is enforced when enabling encryption.
	MinPasswordLength = 8

	pbkdf2Iterations = 210_000
	saltLength       = 16
	keyLength        = 32
)

// ErrPasswordTooShort is returned when enabling encryption with a weak
// password.
var ErrPasswordTooShort = fmt.Errorf("storage: password must be at least %d characters", MinPasswordLength)

// ErrBadPassword is returned when decryption fails authentication.
var ErrBadPassword = errors.New("storage: wrong password or corrupted ciphertext")

// envelope is the on-disk shape of an encrypted snapshot.
type envelope struct {
	EncryptedData     string `json:"encryptedData"`
	EncryptionEnabled bool   `json:"encryptionEnabled"`
	EncryptionSalt    string `json:"encryptionSalt"`
}

func deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keyLength, sha256.New)
}

// Seal wraps plaintext state JSON in the encryption envelope.
func Seal(plain []byte, password string) ([]byte, error) {
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	sealed := gcm.Seal(nonce, nonce, plain, nil)

	return json.Marshal(envelope{
		EncryptedData:     base64.StdEncoding.EncodeToString(sealed),
		EncryptionEnabled: true,
		EncryptionSalt:    base64.StdEncoding.EncodeToString(salt),
	})
}

// Unseal reverses Seal. Returns ErrBadPassword when authentication fails.
func Unseal(wrapped []byte, password string) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(wrapped, &env); err != nil {
		return nil, fmt.Errorf("storage: parse envelope: %w", err)
	}
	if !env.EncryptionEnabled {
		return nil, errors.New("storage: record is not encrypted")
	}
	salt, err := base64.StdEncoding.DecodeString(env.EncryptionSalt)
	if err != nil {
		return nil, fmt.Errorf("storage: decode salt: %w", err)
	}
	sealed, err := base64.StdEncoding.DecodeString(env.EncryptedData)
	if err != nil {
		return nil, fmt.Errorf("storage: decode ciphertext: %w", err)
	}
	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(sealed) < gcm.NonceSize() {
		return nil, ErrBadPassword
	}
	plain, err := gcm.Open(nil, sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():], nil)
	if err != nil {
		return nil, ErrBadPassword
	}
	return plain, nil
}
