// Package secure encrypts personal fields before they are persisted
package secure

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"

	perr "surveyflow/internal/platform/errors"
)

// AES encrypts with AES-CBC under a fixed key and IV and PKCS7 padding.
// Output is standard base64 so it fits a text column
type AES struct {
	block cipher.Block
	iv    []byte
}

// NewAES decodes a base64 key of 16, 24 or 32 bytes and a base64 IV of 16 bytes
func NewAES(keyB64, ivB64 string) (*AES, error) {
	key, err := base64.StdEncoding.DecodeString(keyB64)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeCrypto, "encryption key is not valid base64")
	}
	iv, err := base64.StdEncoding.DecodeString(ivB64)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeCrypto, "encryption iv is not valid base64")
	}
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, perr.Newf(perr.ErrorCodeCrypto, "encryption key must be 16, 24 or 32 bytes, got %d", len(key))
	}
	if len(iv) != aes.BlockSize {
		return nil, perr.Newf(perr.ErrorCodeCrypto, "encryption iv must be %d bytes, got %d", aes.BlockSize, len(iv))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeCrypto, "aes cipher")
	}
	return &AES{block: block, iv: iv}, nil
}

// Encrypt returns base64(AES-CBC(pkcs7(plain))); empty input stays empty
func (a *AES) Encrypt(plain string) (string, error) {
	if plain == "" {
		return "", nil
	}
	buf := pad([]byte(plain), aes.BlockSize)
	out := make([]byte, len(buf))
	cipher.NewCBCEncrypter(a.block, a.iv).CryptBlocks(out, buf)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt reverses Encrypt; empty input stays empty
func (a *AES) Decrypt(enc string) (string, error) {
	if enc == "" {
		return "", nil
	}
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeCrypto, "ciphertext is not valid base64")
	}
	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return "", perr.Newf(perr.ErrorCodeCrypto, "ciphertext length %d is not a multiple of %d", len(raw), aes.BlockSize)
	}
	out := make([]byte, len(raw))
	cipher.NewCBCDecrypter(a.block, a.iv).CryptBlocks(out, raw)
	plain, err := unpad(out, aes.BlockSize)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

func pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte, size int) ([]byte, error) {
	n := int(b[len(b)-1])
	if n == 0 || n > size || n > len(b) {
		return nil, perr.Newf(perr.ErrorCodeCrypto, "invalid padding")
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, perr.Newf(perr.ErrorCodeCrypto, "invalid padding")
		}
	}
	return b[:len(b)-n], nil
}
