package object

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// chainMore is the continuation bit in the encoded chain: set on every
// byte except the last. MaxID fits in the remaining seven bits, which is
// what makes persisted blocks self-delimiting.
const chainMore byte = 0x80

// Chain is an ordered sequence of slot ids addressing a path from a
// root container down to one object. An empty chain addresses the root
// itself.
type Chain []ID

// String renders the chain as slash-separated ids, e.g. "1/0/2".
// The empty chain renders as "/".
func (c Chain) String() string {
	if len(c) == 0 {
		return "/"
	}
	parts := make([]string, len(c))
	for i, id := range c {
		parts[i] = strconv.Itoa(int(id))
	}
	return strings.Join(parts, "/")
}

// Child returns a copy of c extended with id. The copy never aliases
// the receiver's backing array, so walk prefixes stay stable.
func (c Chain) Child(id ID) Chain {
	out := make(Chain, len(c)+1)
	copy(out, c)
	out[len(c)] = id
	return out
}

// Validate checks every id is in [0, MaxID] and the chain is within
// MaxDepth.
func (c Chain) Validate() error {
	if len(c) > MaxDepth {
		return ErrChainTooDeep
	}
	for _, id := range c {
		if id < 0 || id > MaxID {
			return ErrInvalidID
		}
	}
	return nil
}

// Encode renders the chain in continuation encoding: one byte per id,
// bit 0x80 set on all but the last. Empty and invalid chains cannot be
// encoded.
func (c Chain) Encode() ([]byte, error) {
	if len(c) == 0 {
		return nil, ErrEmptyChain
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	out := make([]byte, len(c))
	for i, id := range c {
		b := byte(id)
		if i < len(c)-1 {
			b |= chainMore
		}
		out[i] = b
	}
	return out, nil
}

// DecodeChain reads a continuation-encoded chain from r. It consumes at
// most MaxDepth bytes: a continuation bit still set on the last allowed
// id fails with ErrChainTooDeep without reading past the bound.
func DecodeChain(r io.ByteReader) (Chain, error) {
	chain := make(Chain, 0, MaxDepth)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("decode chain: %w", err)
		}
		chain = append(chain, ID(b&^chainMore))
		if b&chainMore == 0 {
			return chain, nil
		}
		if len(chain) == MaxDepth {
			return nil, ErrChainTooDeep
		}
	}
}

// ParseChain parses the String form ("1/0/2"). "/" and "" parse to the
// empty chain.
func ParseChain(s string) (Chain, error) {
	s = strings.Trim(s, "/")
	if s == "" {
		return Chain{}, nil
	}
	parts := strings.Split(s, "/")
	chain := make(Chain, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > int(MaxID) {
			return nil, fmt.Errorf("parse chain %q: %w", s, ErrInvalidID)
		}
		chain = append(chain, ID(n))
	}
	if err := chain.Validate(); err != nil {
		return nil, err
	}
	return chain, nil
}
