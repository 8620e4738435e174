package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns the bcrypt hash of pw at the default cost.
func HashPassword(pw string) string {
	b, _ := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b)
}

// CheckPassword reports whether pw matches the stored hash.
// An empty hash never matches (SSO accounts carry no local password).
func CheckPassword(pw, hashed string) bool {
	if hashed == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
