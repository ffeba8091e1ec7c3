package genrecord_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nisaacdz/blockify/pkg/genrecord"
)

const sourceFixture = `package fixture

import "github.com/google/uuid"

type Vote struct {
	ID     uuid.UUID
	Choice int64
	Weight uint64
	Note   string
	Proof  []byte
	mu     chan int // unsupported, must be skipped
}
`

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "vote.go")
	require.NoError(t, os.WriteFile(path, []byte(sourceFixture), 0o644))
	return path
}

func TestParseFileExtractsSupportedFields(t *testing.T) {
	path := writeFixture(t)
	spec, err := genrecord.ParseFile(path, "Vote")
	require.NoError(t, err)
	require.Equal(t, "fixture", spec.Package)
	require.Equal(t, "Vote", spec.Type)

	names := make([]string, 0, len(spec.Fields))
	for _, f := range spec.Fields {
		names = append(names, f.Name)
	}
	require.Equal(t, []string{"ID", "Choice", "Weight", "Note", "Proof"}, names)
}

func TestParseFileRejectsMissingType(t *testing.T) {
	path := writeFixture(t)
	_, err := genrecord.ParseFile(path, "NoSuchType")
	require.Error(t, err)
}

func TestParseFileRejectsAllUnsupportedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.go")
	src := `package fixture

type Empty struct {
	mu chan int
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	_, err := genrecord.ParseFile(path, "Empty")
	require.Error(t, err)
}

func TestRenderProducesCompilableShapedSource(t *testing.T) {
	path := writeFixture(t)
	spec, err := genrecord.ParseFile(path, "Vote")
	require.NoError(t, err)

	out, err := genrecord.Render(spec)
	require.NoError(t, err)
	src := string(out)

	require.Contains(t, src, "package fixture")
	require.Contains(t, src, `"bytes"`)
	require.Contains(t, src, "func (v Vote) Marshal() ([]byte, error)")
	require.Contains(t, src, "func (v Vote) Equal(other Vote) bool")
	require.Contains(t, src, "func (v Vote) Clone() Vote")
	require.Contains(t, src, "type VoteCodec struct{}")
	require.Contains(t, src, "var err error")
	require.Contains(t, src, "func (v Vote) Sign(keypair blockcrypto.KeyPair) (blockcrypto.Signature, error)")
	require.Contains(t, src, "func (v Vote) Record(keypair blockcrypto.KeyPair, metadata *record.Metadata) (record.SignedRecord[Vote], error)")
}

func TestRenderOmitsBytesImportWhenUnused(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.go")
	src := `package fixture

type Tally struct {
	Count uint64
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	spec, err := genrecord.ParseFile(path, "Tally")
	require.NoError(t, err)

	out, err := genrecord.Render(spec)
	require.NoError(t, err)
	require.NotContains(t, string(out), `"bytes"`)
}
