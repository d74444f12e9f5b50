// ABOUTME: Tests for the YAML credential store
// ABOUTME: Covers lookup, verification, registration and file format

package credentials

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

const usersPath = "/srv/users.yml"

func newTestStore(t *testing.T, contents string) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	if contents != "" {
		require.NoError(t, afero.WriteFile(fs, usersPath, []byte(contents), 0o600))
	}
	return NewStore(fs, usersPath, WithCost(bcrypt.MinCost)), fs
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLookup_MissingFile(t *testing.T) {
	s, _ := newTestStore(t, "")

	_, ok := s.Lookup("admin")
	assert.False(t, ok)
	assert.False(t, s.Verify("admin", "secret"))
}

func TestLookup_MalformedFile(t *testing.T) {
	s, _ := newTestStore(t, "admin: [unterminated")

	_, ok := s.Lookup("admin")
	assert.False(t, ok)
}

func TestLookup_FlowStyleFile(t *testing.T) {
	hash := hashFor(t, "secret")
	s, _ := newTestStore(t, "{ admin: "+hash+" }")

	got, ok := s.Lookup("admin")
	require.True(t, ok)
	assert.Equal(t, hash, got)
}

func TestVerify(t *testing.T) {
	s, _ := newTestStore(t, "admin: "+hashFor(t, "secret")+"\n")

	assert.True(t, s.Verify("admin", "secret"))
	assert.False(t, s.Verify("admin", "wrong"))
	assert.False(t, s.Verify("Admin", "secret"), "usernames are case-sensitive")
	assert.False(t, s.Verify("guest", "shhhh"))
}

func TestRegister_NewUser(t *testing.T) {
	s, fs := newTestStore(t, "admin: "+hashFor(t, "secret")+"\n")

	require.NoError(t, s.Register("bob", "pw1"))
	assert.True(t, s.Verify("bob", "pw1"))
	assert.True(t, s.Verify("admin", "secret"), "existing users survive a rewrite")

	data, err := afero.ReadFile(fs, usersPath)
	require.NoError(t, err)

	var users map[string]string
	require.NoError(t, yaml.Unmarshal(data, &users))
	assert.Len(t, users, 2)
	assert.NotEqual(t, "pw1", users["bob"], "password must be stored hashed")
}

func TestRegister_CreatesMissingFile(t *testing.T) {
	s, fs := newTestStore(t, "")

	require.NoError(t, s.Register("bob", "pw1"))

	exists, err := afero.Exists(fs, usersPath)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRegister_Duplicate(t *testing.T) {
	s, fs := newTestStore(t, "")
	require.NoError(t, s.Register("bob", "pw1"))

	before, err := afero.ReadFile(fs, usersPath)
	require.NoError(t, err)

	err = s.Register("bob", "other")
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	after, err := afero.ReadFile(fs, usersPath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.True(t, s.Verify("bob", "pw1"))
}

func TestRegister_EmptyUsername(t *testing.T) {
	s, _ := newTestStore(t, "")

	assert.ErrorIs(t, s.Register("  ", "pw"), ErrEmptyUsername)
}

func TestRegister_MalformedFileNotOverwritten(t *testing.T) {
	s, fs := newTestStore(t, "admin: [unterminated")

	err := s.Register("bob", "pw1")
	require.Error(t, err)

	data, err := afero.ReadFile(fs, usersPath)
	require.NoError(t, err)
	assert.Equal(t, "admin: [unterminated", string(data))
}

func TestUsernames(t *testing.T) {
	s, _ := newTestStore(t, "")
	require.NoError(t, s.Register("zoe", "a"))
	require.NoError(t, s.Register("bob", "b"))

	names, err := s.Usernames()
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "zoe"}, names)
}

func TestCheckRegistration(t *testing.T) {
	s, _ := newTestStore(t, "")
	require.NoError(t, s.Register("bob", "pw1"))

	assert.NoError(t, s.CheckRegistration("alice", "pw", "pw"))
	assert.ErrorIs(t, s.CheckRegistration("", "pw", "pw"), ErrEmptyUsername)
	assert.ErrorIs(t, s.CheckRegistration("alice", "pw", "pw2"), ErrPasswordMismatch)
	// Duplicate is reported even when the confirmation also mismatches
	assert.ErrorIs(t, s.CheckRegistration("bob", "pw", "nope"), ErrDuplicateUsername)
}
