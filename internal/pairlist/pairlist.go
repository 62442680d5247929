package pairlist

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/fxamacker/cbor/v2"
)

// Version is the blob format version written by Encode.
const Version = 1

var (
	// ErrUnsupportedVersion is returned when a blob declares a format
	// version this package does not understand.
	ErrUnsupportedVersion = errors.New("unsupported pair list version")

	// ErrNonCanonical is returned when a blob decodes but is not the
	// canonical encoding of its contents.
	ErrNonCanonical = errors.New("pair list blob is not canonically encoded")

	// ErrInvalidUTF8 is returned by Encode when a key or value is not
	// valid UTF-8.
	ErrInvalidUTF8 = errors.New("pair list string is not valid UTF-8")
)

// Pair is one ordered (key, value) element.
type Pair struct {
	_     struct{} `cbor:",toarray"`
	Key   string
	Value string
}

// List is an ordered sequence of pairs. Duplicate keys are allowed and
// order is preserved.
type List []Pair

// Of builds a List from alternating key, value arguments. A trailing key
// without a value gets an empty value.
func Of(kv ...string) List {
	l := make(List, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		p := Pair{Key: kv[i]}
		if i+1 < len(kv) {
			p.Value = kv[i+1]
		}
		l = append(l, p)
	}
	return l
}

// Equal reports whether two lists hold the same pairs in the same order.
// A nil list equals an empty one.
func (l List) Equal(other List) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i].Key != other[i].Key || l[i].Value != other[i].Value {
			return false
		}
	}
	return true
}

type envelope struct {
	_       struct{} `cbor:",toarray"`
	Version uint64
	Pairs   List
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	// An empty list is always written as [], never null, so nil and
	// empty lists share one canonical form.
	encOptions.NilContainers = cbor.NilContainerAsEmpty
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("pairlist: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("pairlist: CBOR decoder initialization failed: " + err.Error())
	}
}

// Encode serializes l into a blob.
func Encode(l List) ([]byte, error) {
	for i, p := range l {
		if !utf8.ValidString(p.Key) || !utf8.ValidString(p.Value) {
			return nil, fmt.Errorf("pair %d: %w", i, ErrInvalidUTF8)
		}
	}
	data, err := encMode.Marshal(envelope{Version: Version, Pairs: l})
	if err != nil {
		return nil, fmt.Errorf("encoding pair list: %w", err)
	}
	return data, nil
}

// Decode parses a blob produced by Encode. An empty list decodes as nil.
func Decode(data []byte) (List, error) {
	var env envelope
	if err := decMode.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding pair list: %w", err)
	}
	if env.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}

	again, err := encMode.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("re-encoding pair list: %w", err)
	}
	if !bytes.Equal(again, data) {
		return nil, ErrNonCanonical
	}

	if len(env.Pairs) == 0 {
		return nil, nil
	}
	return env.Pairs, nil
}
