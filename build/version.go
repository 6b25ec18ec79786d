package build

import (
	"fmt"

	"golang.org/x/xerrors"
)

// CurrentCommit is injected at link time with -X.
var CurrentCommit string

// BuildType selects the suffix appended to the user facing version.
var BuildType int

const (
	BuildMainnet = 0
	BuildDevnet  = 0x1
	BuildDebug   = 0x3
)

var buildSuffixes = map[int]string{
	BuildMainnet: "",
	BuildDevnet:  "+devnet",
	BuildDebug:   "+debug",
}

// BuildVersion is the release version of the ledger node.
const BuildVersion = "0.3.0"

func UserVersion() string {
	suffix, ok := buildSuffixes[BuildType]
	if !ok {
		suffix = fmt.Sprintf("+build%d", BuildType)
	}
	return BuildVersion + suffix + CurrentCommit
}

// Version packs a semver triple as 0x00MMmmpp.
type Version uint32

func newVer(major, minor, patch uint8) Version {
	return Version(uint32(major)<<16 | uint32(minor)<<8 | uint32(patch))
}

func (ve Version) Major() uint32 { return uint32(ve) >> 16 & 0xff }
func (ve Version) Minor() uint32 { return uint32(ve) >> 8 & 0xff }
func (ve Version) Patch() uint32 { return uint32(ve) & 0xff }

// Ints returns (major, minor, patch) versions
func (ve Version) Ints() (uint32, uint32, uint32) {
	return ve.Major(), ve.Minor(), ve.Patch()
}

func (ve Version) String() string {
	return fmt.Sprintf("%d.%d.%d", ve.Major(), ve.Minor(), ve.Patch())
}

// Compatible reports whether a client speaking ve can talk to a node
// exposing v2. Patch releases never change the rpc surface.
func (ve Version) Compatible(v2 Version) bool {
	return ve.Major() == v2.Major() && ve.Minor() == v2.Minor()
}

type NodeType int

const (
	NodeUnknown NodeType = iota

	// NodeLedger runs the quota ledger and serves the api.
	NodeLedger
	// NodeClient only talks to a remote ledger node.
	NodeClient
)

func (t NodeType) String() string {
	switch t {
	case NodeLedger:
		return "ledger"
	case NodeClient:
		return "client"
	default:
		return "unknown"
	}
}

var RunningNodeType NodeType

// FileBankAPIVersion is the semver of the rpc api exposed by the ledger node.
var FileBankAPIVersion = newVer(0, 3, 0)

func VersionForType(nodeType NodeType) (Version, error) {
	if nodeType != NodeLedger && nodeType != NodeClient {
		return 0, xerrors.Errorf("unknown node type %d", nodeType)
	}
	return FileBankAPIVersion, nil
}
