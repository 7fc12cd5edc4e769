package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap keeps the tests fast; the format is identical.
var cheap = Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

func TestArgon2HashService_RoundTrip(t *testing.T) {
	svc := NewArgon2HashServiceWithParams(cheap)

	for _, pass := range []string{"correct horse battery staple", "", strings.Repeat("x", 1000)} {
		hash, err := svc.Hash(pass)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))

		ok, err := svc.Verify(pass, hash)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = svc.Verify(pass+"!", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestArgon2HashService_DefaultParamsInHash(t *testing.T) {
	hash, err := NewArgon2HashService().Hash("operator")
	require.NoError(t, err)
	assert.Contains(t, hash, "$m=65536,t=1,p=4$")
}

func TestArgon2HashService_SaltedPerHash(t *testing.T) {
	svc := NewArgon2HashServiceWithParams(cheap)

	h1, err := svc.Hash("same")
	require.NoError(t, err)
	h2, err := svc.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestArgon2HashService_VerifyUsesStoredParams(t *testing.T) {
	hash, err := NewArgon2HashServiceWithParams(cheap).Hash("pass")
	require.NoError(t, err)

	// A hasher configured differently still verifies older hashes.
	ok, err := NewArgon2HashService().Verify("pass", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgon2HashService_MalformedHashes(t *testing.T) {
	svc := NewArgon2HashServiceWithParams(cheap)

	for _, bad := range []string{
		"not-a-valid-hash",
		"$bcrypt$v=19$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=16$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=0,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$!!$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$",
	} {
		_, err := svc.Verify("pass", bad)
		assert.ErrorIs(t, err, errMalformedHash, "hash %q", bad)
	}
}
