// Package id mints the two identifier shapes entries use: short block
// anchors for diary entries and v4 UUIDs for single-file entries.
package id

import (
	crand "crypto/rand"
	"fmt"
	"io"
	"regexp"

	"github.com/google/uuid"
)

// BlockPrefix is the fixed prefix every diary block anchor carries.
const BlockPrefix = "mp"

const blockChars = "abcdefghijklmnopqrstuvwxyz0123456789"

var blockIDRe = regexp.MustCompile(`^` + BlockPrefix + `[a-z0-9]{4}$`)

// Generator mints ids. The zero value uses crypto/rand; tests swap Rand for
// a deterministic reader. Taken, when set, is consulted so freshly minted
// block ids never collide with already-loaded ones.
type Generator struct {
	Rand  io.Reader
	Taken func(id string) bool
}

func (g *Generator) reader() io.Reader {
	if g != nil && g.Rand != nil {
		return g.Rand
	}
	return crand.Reader
}

// maxUnbiasedByte is the largest multiple of len(blockChars) that fits in a
// byte. Bytes at or above it are rejected so every character of blockChars is
// equally likely.
const maxUnbiasedByte = 256 - 256%len(blockChars)

// BlockID returns BlockPrefix plus four characters of [a-z0-9]. The id
// space is 36^4; with Taken unset a collision is accepted as negligible.
func (g *Generator) BlockID() (string, error) {
	// Retries are bounded so a saturated Taken predicate cannot spin forever.
	for attempt := 0; attempt < 100; attempt++ {
		id := BlockPrefix
		for len(id) < len(BlockPrefix)+4 {
			b, err := unbiasedByte(g.reader())
			if err != nil {
				return "", fmt.Errorf("id: read random: %w", err)
			}
			id += string(blockChars[int(b)%len(blockChars)])
		}
		if g == nil || g.Taken == nil || !g.Taken(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("id: could not mint an unused block id")
}

// unbiasedByte reads bytes until one falls below maxUnbiasedByte.
func unbiasedByte(r io.Reader) (byte, error) {
	var buf [1]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		if int(buf[0]) < maxUnbiasedByte {
			return buf[0], nil
		}
	}
}

// UUID returns a random version-4 UUID.
func (g *Generator) UUID() (string, error) {
	u, err := uuid.NewRandomFromReader(g.reader())
	if err != nil {
		return "", fmt.Errorf("id: new uuid: %w", err)
	}
	return u.String(), nil
}

// IsBlockID reports whether s is a well-formed micro-posting block anchor.
func IsBlockID(s string) bool {
	return blockIDRe.MatchString(s)
}
