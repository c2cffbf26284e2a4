package ports

// PasswordHasher turns secrets into opaque digests and checks them back.
type PasswordHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, digest string) bool
}
