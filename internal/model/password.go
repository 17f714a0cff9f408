package model

// PasswordHasher is a pluggable one-way hash with constant-time verification.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}
