package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// defaultHashCost is the bcrypt cost used when none is configured. At 12,
// hashing takes on the order of a quarter second, slow enough to blunt
// offline guessing without making login sluggish.
const defaultHashCost = 12

// PasswordHasher derives and checks bcrypt password hashes at a fixed cost.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher at the default cost.
func NewPasswordHasher() *PasswordHasher {
	return NewPasswordHasherWithCost(defaultHashCost)
}

// NewPasswordHasherWithCost creates a hasher at the given bcrypt cost.
// A cost outside bcrypt's supported range falls back to the default, so a
// bad BCRYPT_COST value can never silently weaken hashing.
func NewPasswordHasherWithCost(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = defaultHashCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash derives a bcrypt hash of password. The cost is embedded in the hash,
// so raising the configured cost later leaves stored hashes verifiable.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether password matches the stored hash.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
