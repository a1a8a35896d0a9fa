package debian

import "errors"

// Mode selects how the package index is acquired.
type Mode string

const (
	ModeRemote Mode = "remote"
	ModeLocal  Mode = "local"
	ModeTest   Mode = "test"
)

// Request describes one index acquisition. Location is an http(s)
// base URL in remote mode and a filesystem path otherwise.
// Distribution, Component and Architecture are only used in remote
// mode.
type Request struct {
	Mode         Mode
	Location     string
	Distribution string
	Component    string
	Architecture string
}

// Stanza is one package record from the index. Only the fields the
// pipeline recognizes are kept; everything else in the record is
// ignored. HasDepends tells a missing Depends field apart from an
// empty one.
type Stanza struct {
	Package    string
	Depends    string
	HasDepends bool
}

// Index is a parsed package index.
type Index struct {
	stanzas []Stanza
	source  string
}

var (
	// ErrTransport covers network failures, non-2xx responses and
	// unreadable local files.
	ErrTransport = errors.New("index could not be retrieved")
	// ErrDecode covers corrupt compression streams and index text
	// that is not valid UTF-8.
	ErrDecode = errors.New("index could not be decoded")
)
