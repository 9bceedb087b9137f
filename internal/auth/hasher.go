package auth

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// HashCost is the bcrypt work factor. Digests embed cost and salt, so the
// factor can be raised later without invalidating stored records.
const HashCost = 12

// Hasher wraps bcrypt behind a weighted semaphore. Hashing at cost 12 burns a
// core for a noticeable slice of time; the bound keeps a burst of signups
// from starving every other in-flight request.
type Hasher struct {
	sem *semaphore.Weighted
}

// NewHasher constructs a Hasher sized to the available parallelism.
func NewHasher() *Hasher {
	return &Hasher{sem: semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0)))}
}

// Hash derives a salted one-way digest from plaintext.
func (h *Hasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), HashCost)
	if err != nil {
		return "", fmt.Errorf("auth: hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. A mismatch is a normal
// outcome, not an error.
func (h *Hasher) Verify(ctx context.Context, plaintext, digest string) (bool, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer h.sem.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("auth: verify password: %w", err)
}
