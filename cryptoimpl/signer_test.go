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

package cryptoimpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	party, signer, err := GenerateKeyPair()
	require.NoError(t, err)

	payload := []byte("snapshot payload")
	sig, err := signer.Sign(payload)
	require.NoError(t, err)

	v := NewVerifier()
	assert.True(t, v.Verify(party, sig, payload))
}

func TestVerifyRejectsWrongParty(t *testing.T) {
	_, signer, err := GenerateKeyPair()
	require.NoError(t, err)
	other, _, err := GenerateKeyPair()
	require.NoError(t, err)

	payload := []byte("snapshot payload")
	sig, err := signer.Sign(payload)
	require.NoError(t, err)

	v := NewVerifier()
	assert.False(t, v.Verify(other, sig, payload))
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	party, signer, err := GenerateKeyPair()
	require.NoError(t, err)

	sig, err := signer.Sign([]byte("original"))
	require.NoError(t, err)

	v := NewVerifier()
	assert.False(t, v.Verify(party, sig, []byte("tampered")))
}

func TestVerifyRejectsMalformedSignature(t *testing.T) {
	party, _, err := GenerateKeyPair()
	require.NoError(t, err)

	v := NewVerifier()
	assert.False(t, v.Verify(party, Signature{bytes: []byte("too short")}, []byte("payload")))
}
