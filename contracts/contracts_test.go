package contracts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/stretchr/testify/require"
)

const testDir = "respect"

func TestReadMissingFiles(t *testing.T) {
	_fs := fstest.MapFS{}

	// Missing NEF
	_, err := Read(_fs, testDir)
	require.Error(t, err)

	// Missing manifest.
	_fs[testDir+"/"+nefName] = &fstest.MapFile{}
	_, err = Read(_fs, testDir)
	require.Error(t, err)
}

func TestReadInvalidFormat(t *testing.T) {
	var (
		_fs          = fstest.MapFS{}
		nefPath      = testDir + "/" + nefName
		manifestPath = testDir + "/" + manifestName
	)

	validNEF, bNEF := anyValidNEF(t)
	validManifest, jManifest := anyValidManifest(t, "Respect")

	_fs[nefPath] = &fstest.MapFile{Data: bNEF}
	_fs[manifestPath] = &fstest.MapFile{Data: jManifest}

	c, err := Read(_fs, testDir)
	require.NoError(t, err)
	require.Equal(t, validNEF.Checksum, c.NEF.Checksum)
	require.Equal(t, validManifest.Name, c.Manifest.Name)

	_fs[nefPath] = &fstest.MapFile{Data: []byte("not a NEF")}
	_fs[manifestPath] = &fstest.MapFile{Data: jManifest}

	_, err = Read(_fs, testDir)
	require.ErrorIs(t, err, errInvalidNEF)

	_fs[nefPath] = &fstest.MapFile{Data: bNEF}
	_fs[manifestPath] = &fstest.MapFile{Data: []byte("not a manifest")}

	_, err = Read(_fs, testDir)
	require.ErrorIs(t, err, errInvalidManifest)
}

func TestReadDirMarshal(t *testing.T) {
	dir := t.TempDir()
	_, bNEF := anyValidNEF(t)
	_, jManifest := anyValidManifest(t, "Respect")

	require.NoError(t, os.WriteFile(filepath.Join(dir, nefName), bNEF, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, manifestName), jManifest, 0o600))

	c, err := ReadDir(dir)
	require.NoError(t, err)

	gotNEF, gotManifest, err := c.Marshal()
	require.NoError(t, err)
	require.Equal(t, bNEF, gotNEF)

	var m manifest.Manifest
	require.NoError(t, json.Unmarshal(gotManifest, &m))
	require.Equal(t, "Respect", m.Name)

	_, err = ReadDir(filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func anyValidNEF(tb testing.TB) (nef.File, []byte) {
	script := make([]byte, 32)

	_nef, err := nef.NewFile(script)
	require.NoError(tb, err)

	bNEF, err := _nef.Bytes()
	require.NoError(tb, err)

	return *_nef, bNEF
}

func anyValidManifest(tb testing.TB, name string) (manifest.Manifest, []byte) {
	_manifest := manifest.NewManifest(name)

	jManifest, err := json.Marshal(_manifest)
	require.NoError(tb, err)

	return *_manifest, jManifest
}
