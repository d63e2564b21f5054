package identifier

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/testutil"
)

const (
	hashA = "aaaa1111aaaa1111aaaa1111aaaa1111aaaa1111aaaa1111aaaa1111aaaa1111"
	hashB = "aaaa2222aaaa2222aaaa2222aaaa2222aaaa2222aaaa2222aaaa2222aaaa2222"
	hashC = "cccc3333cccc3333cccc3333cccc3333cccc3333cccc3333cccc3333cccc3333"
)

func newTestService(t *testing.T) (*Service, *testutil.MemoryFS) {
	t.Helper()
	fs := testutil.NewMemoryFS()
	svc := NewService(fs, "/ws/.scaffold/aliases.json", TemplateHasher{})
	return svc, fs
}

func TestResolveFullHash(t *testing.T) {
	svc, _ := newTestService(t)
	available := []string{hashA, hashB}

	got, err := svc.Resolve(hashA, available)
	require.NoError(t, err)
	assert.Equal(t, hashA, got, "resolving a full hash is idempotent")
}

func TestResolveFullHashNotAvailable(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Resolve(hashC, []string{hashA})
	assert.True(t, errors.IsErrorCode(err, errors.ErrIdentifierNotFound))
}

func TestResolveUniquePrefix(t *testing.T) {
	svc, _ := newTestService(t)
	available := []string{hashA, hashB, hashC}

	got, err := svc.Resolve("cccc", available)
	require.NoError(t, err)
	assert.Equal(t, hashC, got)
}

func TestResolveAmbiguousPrefix(t *testing.T) {
	svc, _ := newTestService(t)
	available := []string{hashA, hashB, hashC}

	// hashA and hashB share the prefix "aaaa"
	_, err := svc.Resolve("aaaa", available)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAmbiguousIdentifier))

	details := errors.GetErrorDetails(err)
	require.NotNil(t, details)
	candidates, ok := details["candidates"].([]string)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{hashA, hashB}, candidates)

	// A longer prefix disambiguates
	got, err := svc.Resolve("aaaa1", available)
	require.NoError(t, err)
	assert.Equal(t, hashA, got)
}

func TestResolvePrefixNoMatch(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Resolve("ffff", []string{hashA, hashB})
	assert.True(t, errors.IsErrorCode(err, errors.ErrIdentifierNotFound))
}

func TestResolveAlias(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.RegisterAlias(hashA, "my-api"))

	got, err := svc.Resolve("my-api", []string{hashA, hashB})
	require.NoError(t, err)
	assert.Equal(t, hashA, got)
}

func TestResolveOrphanedAliasIsRemoved(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.RegisterAlias(hashA, "stale"))

	// hashA is gone from the universe
	_, err := svc.Resolve("stale", []string{hashB})
	assert.True(t, errors.IsErrorCode(err, errors.ErrIdentifierNotFound))

	// The orphan was dropped from the store
	assert.Empty(t, svc.Aliases(hashA))
	_, err = svc.Resolve("stale", []string{hashA, hashB})
	assert.Error(t, err, "orphaned alias must not come back even when the hash does")
}

func TestResolveEmptyIdentifier(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Resolve("", []string{hashA})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestRegisterAliasConflict(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.RegisterAlias(hashA, "api"))

	err := svc.RegisterAlias(hashB, "api")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAliasConflict))

	// Existing mapping is untouched
	got, err := svc.Resolve("api", []string{hashA, hashB})
	require.NoError(t, err)
	assert.Equal(t, hashA, got)
}

func TestRegisterAliasIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.RegisterAlias(hashA, "api"))
	require.NoError(t, svc.RegisterAlias(hashA, "api"))

	assert.Equal(t, []string{"api"}, svc.Aliases(hashA))
}

func TestRegisterAliasValidation(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.RegisterAlias("nothex", "api")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidHash))

	err = svc.RegisterAlias(hashA, "bad alias!")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidAlias))

	err = svc.RegisterAlias(hashA, "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidAlias))
}

func TestRemoveAlias(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.RegisterAlias(hashA, "api"))
	require.NoError(t, svc.RegisterAlias(hashA, "backend"))

	require.NoError(t, svc.RemoveAlias("api"))
	assert.Equal(t, []string{"backend"}, svc.Aliases(hashA))

	// Removing an unknown alias is an explicit error
	err := svc.RemoveAlias("api")
	assert.True(t, errors.IsErrorCode(err, errors.ErrAliasNotFound))
}

func TestCleanupOrphans(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.RegisterAlias(hashA, "keep"))
	require.NoError(t, svc.RegisterAlias(hashB, "drop-1"))
	require.NoError(t, svc.RegisterAlias(hashB, "drop-2"))

	removed, err := svc.CleanupOrphans([]string{hashA})
	require.NoError(t, err)
	assert.Equal(t, []string{"drop-1", "drop-2"}, removed)

	assert.Equal(t, []string{"keep"}, svc.Aliases(hashA))
	assert.Empty(t, svc.Aliases(hashB))
}

func TestCleanupOrphansNothingToDo(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.RegisterAlias(hashA, "keep"))

	removed, err := svc.CleanupOrphans([]string{hashA})
	require.NoError(t, err)
	assert.Nil(t, removed)
}

func TestPersistedStoreShape(t *testing.T) {
	svc, fs := newTestService(t)
	require.NoError(t, svc.RegisterAlias(hashA, "api"))

	data, err := fs.ReadFile("/ws/.scaffold/aliases.json")
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))

	// Forward mapping and timestamp only; the reverse map is never persisted
	assert.Contains(t, doc, "aliases")
	assert.Contains(t, doc, "updated")
	assert.Len(t, doc, 2)
}

func TestStoreReloadAcrossInstances(t *testing.T) {
	fs := testutil.NewMemoryFS()
	first := NewService(fs, "/ws/.scaffold/aliases.json", TemplateHasher{})
	require.NoError(t, first.RegisterAlias(hashA, "api"))

	// A second service over the same store sees the alias
	second := NewService(fs, "/ws/.scaffold/aliases.json", TemplateHasher{})
	got, err := second.Resolve("api", []string{hashA})
	require.NoError(t, err)
	assert.Equal(t, hashA, got)
}

func TestShortHash(t *testing.T) {
	svc, _ := newTestService(t)

	assert.Equal(t, hashA[:8], svc.ShortHash(hashA, false))
	assert.Equal(t, hashA[:12], svc.ShortHash(hashA, true))

	require.NoError(t, svc.RegisterAlias(hashA, "api"))
	short := svc.ShortHash(hashA, false)
	assert.True(t, strings.HasPrefix(short, hashA[:8]))
	assert.Contains(t, short, `"api"`)
}
