package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

const (
	otpLength      = 6
	otpTTL         = 5 * time.Minute
	otpMaxAttempts = 5
)

type otpEntry struct {
	code      string
	expiresAt time.Time
	attempts  int
}

// OTPStore keeps pending one-time codes in memory, keyed by phone number.
// Codes expire after a short TTL and are consumed on successful verification.
type OTPStore struct {
	mu      sync.Mutex
	pending map[string]*otpEntry
	now     func() time.Time
}

func NewOTPStore() *OTPStore {
	return &OTPStore{
		pending: make(map[string]*otpEntry),
		now:     time.Now,
	}
}

// Generate creates a fresh code for the phone number, replacing any
// previous pending code.
func (s *OTPStore) Generate(phone string) (string, error) {
	code, err := randomCode(otpLength)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[phone] = &otpEntry{
		code:      code,
		expiresAt: s.now().Add(otpTTL),
	}
	return code, nil
}

// Verify checks a submitted code. A correct code is consumed; too many wrong
// guesses invalidate the pending code entirely.
func (s *OTPStore) Verify(phone, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.pending[phone]
	if !ok {
		return false
	}
	if s.now().After(entry.expiresAt) {
		delete(s.pending, phone)
		return false
	}
	if entry.code != code {
		entry.attempts++
		if entry.attempts >= otpMaxAttempts {
			delete(s.pending, phone)
		}
		return false
	}
	delete(s.pending, phone)
	return true
}

func randomCode(length int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < length; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", length, n), nil
}
