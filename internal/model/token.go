package model

// TokenCodec issues and decodes signed authentication tokens.
type TokenCodec interface {
	Issue(subject string, role Role) (string, error)
	// Decode verifies the signature and structure only; expiry is checked by IsExpired.
	Decode(token string) (Claims, error)
	IsExpired(claims Claims) bool
}
