package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/mr-tron/base58"
)

const (
	// TokenPrefix is the prefix for all generated webhook tokens
	TokenPrefix = "mensa_"
)

// GenerateToken creates a new random webhook token and the hash to configure on the server.
// Format: mensa_ + Base58(SHA256(random_bytes))
func GenerateToken() (rawToken string, tokenHash string, err error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", err
	}

	hash := sha256.Sum256(randomBytes)
	rawToken = TokenPrefix + base58.Encode(hash[:])

	return rawToken, HashToken(rawToken), nil
}

// HashToken creates the SHA256 hex digest the server stores instead of the token
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// TokenSet holds the accepted token hashes
type TokenSet struct {
	hashes [][]byte
}

// NewTokenSet accepts hex SHA256 hashes; blank entries are ignored
func NewTokenSet(hashes []string) *TokenSet {
	s := &TokenSet{}
	for _, h := range hashes {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" {
			continue
		}
		s.hashes = append(s.hashes, []byte(h))
	}
	return s
}

// Enabled reports whether any token is configured
func (s *TokenSet) Enabled() bool {
	return s != nil && len(s.hashes) > 0
}

// Match compares the hash of rawToken against every configured hash in constant time
func (s *TokenSet) Match(rawToken string) bool {
	if !s.Enabled() || rawToken == "" {
		return false
	}
	got := []byte(HashToken(rawToken))
	matched := 0
	for _, want := range s.hashes {
		matched |= subtle.ConstantTimeCompare(got, want)
	}
	return matched == 1
}

//This project is the webhook backend of the OpenSourceDUTH canteen assistant. It answers "what is served on day D" from open canteen data.
//Mensa Webhook Copyright (C) 2025 OpenSourceDUTH
//This program is free software: you can redistribute it and/or modify
//it under the terms of the GNU General Public License as published by
//the Free Software Foundation, either version 3 of the License, or
//(at your option) any later version.
//
//This program is distributed in the hope that it will be useful,
//but WITHOUT ANY WARRANTY; without even the implied warranty of
//MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//GNU General Public License for more details.
//
//You should have received a copy of the GNU General Public License
//along with this program.  If not, see <https://www.gnu.org/licenses/>.
