package keystore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEncryptedStore(t *testing.T) *EncryptedFileStore {
	t.Helper()
	s, err := NewEncryptedFileStore(t.TempDir(), "correct horse battery staple", newTestLogger())
	require.NoError(t, err)
	return s
}

func TestEncryptedFileStore_RequiresOptions(t *testing.T) {
	_, err := NewEncryptedFileStore("", "pw", newTestLogger())
	assert.ErrorIs(t, err, ErrInvalidOptions)

	_, err = NewEncryptedFileStore(t.TempDir(), "", newTestLogger())
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func TestEncryptedFileStore_RoundTrip(t *testing.T) {
	s := newTestEncryptedStore(t)

	require.NoError(t, s.Add(Item{Service: "svc", Account: "acct", Data: []byte("sk-ant-123")}))

	got, err := s.Get(Query{Service: "svc", Account: "acct"})
	require.NoError(t, err)
	assert.Equal(t, []byte("sk-ant-123"), got)

	err = s.Add(Item{Service: "svc", Account: "acct", Data: []byte("again")})
	assert.ErrorIs(t, err, ErrDuplicateItem)
}

func TestEncryptedFileStore_GetMissing(t *testing.T) {
	s := newTestEncryptedStore(t)

	_, err := s.Get(Query{Service: "svc", Account: "acct"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Get(Query{Service: "svc"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEncryptedFileStore_UnfilteredGet(t *testing.T) {
	s := newTestEncryptedStore(t)

	require.NoError(t, s.Add(Item{Service: "svc", Account: "zed", Data: []byte("z")}))
	require.NoError(t, s.Add(Item{Service: "svc", Account: "amy", Data: []byte("a")}))

	got, err := s.Get(Query{Service: "svc"})
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), got)
}

func TestEncryptedFileStore_Delete(t *testing.T) {
	s := newTestEncryptedStore(t)

	require.NoError(t, s.Add(Item{Service: "svc", Account: "acct", Data: []byte("v")}))
	require.NoError(t, s.Delete(Query{Service: "svc", Account: "acct"}))
	assert.NoError(t, s.Delete(Query{Service: "svc", Account: "acct"}))

	_, err := s.Get(Query{Service: "svc", Account: "acct"})
	assert.ErrorIs(t, err, ErrNotFound)
}
