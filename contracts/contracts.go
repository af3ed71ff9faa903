/*
Package contracts reads compiled HVYM collective contracts and provides
access to them.
*/
package contracts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/nspcc-dev/neo-go/pkg/io"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
)

const (
	collectiveDir  = "collective"
	opusTokenDir   = "opustoken"
	nodeTokenDir   = "nodetoken"
	ipfsTokenDir   = "ipfstoken"
	nodeFactoryDir = "nodefactory"
	ipfsFactoryDir = "ipfsfactory"

	nefName      = "contract.nef"
	manifestName = "manifest.json"
)

// Contract groups information about a compiled Neo contract.
type Contract struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// Contracts is the full compiled collective set in the order the
// components are deployed.
type Contracts struct {
	NodeToken   Contract
	IPFSToken   Contract
	OpusToken   Contract
	NodeFactory Contract
	IPFSFactory Contract
	Collective  Contract
}

var (
	errInvalidNEF      = errors.New("invalid NEF")
	errInvalidManifest = errors.New("invalid manifest")
)

// ReadDir reads the compiled collective set from the given build
// directory, one subdirectory with contract.nef and manifest.json per
// contract, the layout the neo-go compiler produces.
func ReadDir(dir string) (Contracts, error) {
	return Read(os.DirFS(dir))
}

// Read is ReadDir over an arbitrary file system.
func Read(_fs fs.FS) (Contracts, error) {
	var (
		c   Contracts
		err error
	)

	for _, r := range []struct {
		dir string
		dst *Contract
	}{
		{nodeTokenDir, &c.NodeToken},
		{ipfsTokenDir, &c.IPFSToken},
		{opusTokenDir, &c.OpusToken},
		{nodeFactoryDir, &c.NodeFactory},
		{ipfsFactoryDir, &c.IPFSFactory},
		{collectiveDir, &c.Collective},
	} {
		*r.dst, err = readContractFromDir(_fs, r.dir)
		if err != nil {
			return c, fmt.Errorf("read contract %s: %w", r.dir, err)
		}
	}

	return c, nil
}

func readContractFromDir(_fs fs.FS, dir string) (Contract, error) {
	var c Contract

	// fs.FS always uses "/", even on Windows, so filepath.Join() is not
	// applicable.
	fNEF, err := _fs.Open(dir + "/" + nefName)
	if err != nil {
		return c, fmt.Errorf("open NEF: %w", err)
	}
	defer fNEF.Close()

	fManifest, err := _fs.Open(dir + "/" + manifestName)
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
