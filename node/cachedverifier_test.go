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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sk-saru/hydra-poc/head"
)

type countingVerifier struct {
	calls int
	ok    bool
}

func (v *countingVerifier) Verify(head.Party, head.Signature, []byte) bool {
	v.calls++
	return v.ok
}

type rawSig []byte

func (s rawSig) Bytes() []byte { return s }

func TestCachedVerifierMemoizes(t *testing.T) {
	inner := &countingVerifier{ok: true}
	v := newCachedVerifier(inner, 0)

	party := head.Party{VerificationKey: [32]byte{1}}
	sig := rawSig([]byte{2, 3, 4})
	payload := []byte("payload")

	assert.True(t, v.Verify(party, sig, payload))
	assert.True(t, v.Verify(party, sig, payload))
	assert.True(t, v.Verify(party, sig, payload))
	assert.Equal(t, 1, inner.calls, "repeat verifications of the same (party, sig, payload) must hit the cache")

	assert.True(t, v.Verify(party, sig, []byte("different payload")))
	assert.Equal(t, 2, inner.calls, "a different payload must miss the cache")
}
