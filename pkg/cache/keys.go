package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Keyer derives cache keys.
type Keyer interface {
	LayoutKey(sourceHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// Hash returns the hex SHA-256 of data. Sources and laid-out DOT are keyed
// by it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DefaultKeyer keys layouts as "layout:<sha256>" and artifacts as
// "artifact:<sha256>", hashing the content hash together with the options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(sourceHash string, opts LayoutKeyOpts) string {
	return digest("layout", sourceHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return digest("artifact", layoutHash, opts)
}

// digest hashes the content hash and the JSON form of opts. Option structs
// marshal with a fixed field order, so equal options give equal keys.
func digest(kind, contentHash string, opts any) string {
	h := sha256.New()
	h.Write([]byte(contentHash))
	h.Write([]byte{0})
	_ = json.NewEncoder(h).Encode(opts)
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// ScopedKeyer prefixes every key of an inner Keyer, so several deployments
// can share one Redis database:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "animaut:")
type ScopedKeyer struct {
	Inner  Keyer
	Prefix string
}

// NewScopedKeyer wraps inner, or a DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return ScopedKeyer{Inner: inner, Prefix: prefix}
}

func (k ScopedKeyer) LayoutKey(sourceHash string, opts LayoutKeyOpts) string {
	return k.Prefix + k.Inner.LayoutKey(sourceHash, opts)
}

func (k ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.Prefix + k.Inner.ArtifactKey(layoutHash, opts)
}
