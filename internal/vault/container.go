package vault

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Container layout:
//
//	magic "JRNL" | version | argon2 time | argon2 memory | argon2 threads | salt | nonce | ciphertext+tag
//
// Integers are big-endian. The whole header is authenticated as additional
// data, so tampering with the KDF parameters fails like a wrong password.
const (
	magic          = "JRNL"
	formatVersion  = 1
	saltSize       = 16
	headerSize     = len(magic) + 1 + 4 + 4 + 1 + saltSize + chacha20poly1305.NonceSize
	minContainer   = headerSize + chacha20poly1305.Overhead
	maxKDFTime     = 16
	maxKDFMemory   = 1 << 20 // KiB
	derivedKeySize = chacha20poly1305.KeySize
)

// KDFParams are the argon2id cost parameters used to derive the container key
// from the password.
type KDFParams struct {
	Time    uint32 // passes
	Memory  uint32 // KiB
	Threads uint8
}

// DefaultKDF is the argon2id cost for new containers: one pass over 64 MiB.
var DefaultKDF = KDFParams{Time: 1, Memory: 64 * 1024, Threads: 4}

func (p KDFParams) valid() bool {
	return p.Time >= 1 && p.Time <= maxKDFTime &&
		p.Memory >= 8 && p.Memory <= maxKDFMemory &&
		p.Threads >= 1
}

type header struct {
	kdf   KDFParams
	salt  [saltSize]byte
	nonce [chacha20poly1305.NonceSize]byte
}

func (h header) marshal() []byte {
	b := make([]byte, 0, headerSize)
	b = append(b, magic...)
	b = append(b, formatVersion)
	b = binary.BigEndian.AppendUint32(b, h.kdf.Time)
	b = binary.BigEndian.AppendUint32(b, h.kdf.Memory)
	b = append(b, h.kdf.Threads)
	b = append(b, h.salt[:]...)
	b = append(b, h.nonce[:]...)
	return b
}

func parseHeader(data []byte) (header, error) {
	var h header
	if len(data) < len(magic)+1 || !bytes.Equal(data[:len(magic)], []byte(magic)) {
		return h, fmt.Errorf("%w: unrecognized header", ErrInvalidFormat)
	}
	if v := data[len(magic)]; v != formatVersion {
		return h, fmt.Errorf("%w: unsupported version %d", ErrInvalidFormat, v)
	}
	if len(data) < minContainer {
		return h, fmt.Errorf("%w: truncated container (%d bytes)", ErrInvalidFormat, len(data))
	}

	rest := data[len(magic)+1:]
	h.kdf.Time = binary.BigEndian.Uint32(rest[0:4])
	h.kdf.Memory = binary.BigEndian.Uint32(rest[4:8])
	h.kdf.Threads = rest[8]
	rest = rest[9:]
	copy(h.salt[:], rest[:saltSize])
	copy(h.nonce[:], rest[saltSize:])

	if !h.kdf.valid() {
		return h, fmt.Errorf("%w: key derivation parameters out of bounds", ErrInvalidFormat)
	}
	return h, nil
}

func deriveKey(password string, salt []byte, p KDFParams) []byte {
	return argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, derivedKeySize)
}

// seal encrypts plaintext under a key derived from password with a fresh salt
// and nonce.
func seal(plaintext []byte, password string, p KDFParams) ([]byte, error) {
	if !p.valid() {
		return nil, fmt.Errorf("%w: key derivation parameters out of bounds", ErrInvalidFormat)
	}
	h := header{kdf: p}
	if _, err := rand.Read(h.salt[:]); err != nil {
		return nil, fmt.Errorf("%w: generating salt: %v", ErrNotAccessible, err)
	}
	if _, err := rand.Read(h.nonce[:]); err != nil {
		return nil, fmt.Errorf("%w: generating nonce: %v", ErrNotAccessible, err)
	}

	aead, err := chacha20poly1305.New(deriveKey(password, h.salt[:], p))
	if err != nil {
		return nil, fmt.Errorf("%w: creating cipher: %v", ErrNotAccessible, err)
	}

	hdr := h.marshal()
	return aead.Seal(hdr, h.nonce[:], plaintext, hdr), nil
}

// open authenticates and decrypts a container. Any authentication failure is
// reported as ErrWrongPassword: the AEAD cannot tell a wrong key from a
// corrupted ciphertext.
func open(data []byte, password string) ([]byte, error) {
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.New(deriveKey(password, h.salt[:], h.kdf))
	if err != nil {
		return nil, fmt.Errorf("%w: creating cipher: %v", ErrNotAccessible, err)
	}

	plaintext, err := aead.Open(nil, h.nonce[:], data[headerSize:], data[:headerSize])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrongPassword, err)
	}
	return plaintext, nil
}
