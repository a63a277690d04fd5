package imagestore

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(t.TempDir(), logger)
}

func TestGenerateName(t *testing.T) {
	name, err := GenerateName("photo.png")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.Contains(t, name, "-")

	other, err := GenerateName("photo.png")
	require.NoError(t, err)
	assert.NotEqual(t, name, other)
}

func TestGenerateNameKeepsLastExtension(t *testing.T) {
	name, err := GenerateName("archive.tar.gz")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".gz"))
}

func TestGenerateNameRejectsMissingExtension(t *testing.T) {
	_, err := GenerateName("noextension")
	assert.ErrorIs(t, err, ErrNoExtension)

	_, err = GenerateName("trailingdot.")
	assert.ErrorIs(t, err, ErrNoExtension)

	_, err = GenerateName("")
	assert.ErrorIs(t, err, ErrNoExtension)
}

func TestPutReadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	ref, err := s.Put("a.png", []byte("payload"))
	require.NoError(t, err)
	assert.Equal(t, RefPrefix+"a.png", ref)

	data, err := s.Read(ref)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}

func TestPutOverwritesExisting(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Put("a.png", []byte("one"))
	require.NoError(t, err)
	ref, err := s.Put("a.png", []byte("two"))
	require.NoError(t, err)

	data, err := s.Read(ref)
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), data)
}

func TestReadMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Read(RefPrefix + "nope.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	ref, err := s.Put("a.png", []byte("payload"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ref))
	require.NoError(t, s.Delete(ref))

	_, err = s.Read(ref)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteEmptyRefIsNoop(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Delete(""))
}

func TestRejectsPathTraversal(t *testing.T) {
	s := newTestStore(t)

	err := s.Delete(RefPrefix + "../escape.png")
	var attErr *AttachmentError
	require.True(t, errors.As(err, &attErr))

	_, err = s.Read(RefPrefix + "../escape.png")
	require.True(t, errors.As(err, &attErr))
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestDeleteLeavesOtherFiles(t *testing.T) {
	s := newTestStore(t)

	refA, err := s.Put("a.png", []byte("a"))
	require.NoError(t, err)
	refB, err := s.Put("b.png", []byte("b"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(refA))

	entries, err := os.ReadDir(s.Dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := s.Read(refB)
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), data)
}
