package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJWTRoundTrip(t *testing.T) {
	j := &JWTer{Secret: []byte("unit-secret"), Issuer: "roomdesk", TTL: time.Hour}

	tok, err := j.Issue("u1", "a@x.io", "marie", "admin")
	assert.NoError(t, err)
	assert.NotEmpty(t, tok)

	claims, err := j.Parse(tok)
	assert.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "a@x.io", claims.Email)
	assert.Equal(t, "marie", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestJWTParseRejectsWrongSecret(t *testing.T) {
	j := &JWTer{Secret: []byte("secret-a"), Issuer: "roomdesk", TTL: time.Hour}
	tok, err := j.Issue("u1", "a@x.io", "marie", "user")
	assert.NoError(t, err)

	other := &JWTer{Secret: []byte("secret-b"), Issuer: "roomdesk", TTL: time.Hour}
	_, err = other.Parse(tok)
	assert.Error(t, err)
}

func TestJWTParseRejectsGarbage(t *testing.T) {
	j := &JWTer{Secret: []byte("unit-secret"), Issuer: "roomdesk", TTL: time.Hour}
	_, err := j.Parse("not-a-token")
	assert.Error(t, err)
}
