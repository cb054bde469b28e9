/*
Package contracts reads compiled Respect contract artifacts.

Contract is compiled by neo-go into contract.nef and manifest.json files
placed in the same directory.
*/
package contracts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/nspcc-dev/neo-go/pkg/io"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
)

const (
	// RespectDir is a directory of the Respect contract relative to the
	// repository root.
	RespectDir = "contracts/respect"

	nefName      = "contract.nef"
	manifestName = "manifest.json"
)

// Contract groups compiled Neo contract artifacts.
type Contract struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

var (
	errInvalidNEF      = errors.New("invalid NEF")
	errInvalidManifest = errors.New("invalid manifest")
)

// ReadDir reads contract artifacts from the directory of the local file
// system.
func ReadDir(dir string) (Contract, error) {
	c, err := Read(os.DirFS(dir), ".")
	if err != nil {
		return c, fmt.Errorf("read contract %s: %w", dir, err)
	}
	return c, nil
}

// Read reads contract artifacts from the directory of the given fs.FS.
func Read(fsys fs.FS, dir string) (Contract, error) {
	var c Contract

	// fs.FS uses "/" even on Windows, so filepath.Join() is not applicable.
	fNEF, err := fsys.Open(path.Join(dir, nefName))
	if err != nil {
		return c, fmt.Errorf("open NEF: %w", err)
	}
	defer fNEF.Close()

	fManifest, err := fsys.Open(path.Join(dir, manifestName))
	if err != nil {
		return c, fmt.Errorf("open manifest: %w", err)
	}
	defer fManifest.Close()

	bReader := io.NewBinReaderFromIO(fNEF)
	c.NEF.DecodeBinary(bReader)
	if bReader.Err != nil {
		return c, fmt.Errorf("%w: %w", errInvalidNEF, bReader.Err)
	}

	err = json.NewDecoder(fManifest).Decode(&c.Manifest)
	if err != nil {
		return c, fmt.Errorf("%w: %w", errInvalidManifest, err)
	}

	return c, nil
}

// Marshal returns serialized NEF and manifest as expected by contract
// update methods.
func (c Contract) Marshal() ([]byte, []byte, error) {
	bNEF, err := c.NEF.Bytes()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", errInvalidNEF, err)
	}

	jManifest, err := json.Marshal(&c.Manifest)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", errInvalidManifest, err)
	}

	return bNEF, jManifest, nil
}
