// Copyright 2019 The ebakus/go-ebakus Authors
// This file is part of the ebakus/go-ebakus library.
//
// The ebakus/go-ebakus library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The ebakus/go-ebakus library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ebakus/go-ebakus library. If not, see <http://www.gnu.org/licenses/>.

package node

import (
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/crypto/sha3"

	"github.com/sk-saru/hydra-poc/head"
)

// DefaultVerifyCacheSize bounds cachedVerifier's memo table. AckSn retries
// under the TTL/re-enqueue policy re-verify the same (party, payload)
// repeatedly; a node with a handful of peers and a few outstanding
// snapshot rounds never needs more than a few dozen live entries, so this
// is sized generously rather than tuned.
const DefaultVerifyCacheSize = 256

// cachedVerifier memoizes Verify results, since a retried AckSn carries an
// identical signature over an identical payload and Ed25519 verification
// is the most expensive step on that path.
type cachedVerifier struct {
	inner head.Verifier
	cache *lru.Cache
}

func newCachedVerifier(inner head.Verifier, size int) *cachedVerifier {
	if size <= 0 {
		size = DefaultVerifyCacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		// Only returned by golang-lru for a non-positive size, which is
		// excluded above.
		panic(err)
	}
	return &cachedVerifier{inner: inner, cache: cache}
}

func (v *cachedVerifier) Verify(party head.Party, sig head.Signature, payload []byte) bool {
	key := verifyCacheKey(party, sig, payload)
	if cached, ok := v.cache.Get(key); ok {
		return cached.(bool)
	}
	ok := v.inner.Verify(party, sig, payload)
	v.cache.Add(key, ok)
	return ok
}

func verifyCacheKey(party head.Party, sig head.Signature, payload []byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(party.VerificationKey[:])
	h.Write(sig.Bytes())
	h.Write(payload)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
