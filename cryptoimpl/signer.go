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

// Package cryptoimpl is a reference Signer/Verifier implementation built on
// Ed25519. head and headlogic never import this package directly — a node
// is wired to it (or to an alternative) only at the shell, through the
// Signer/Verifier capability interfaces.
package cryptoimpl

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/ed25519"

	"github.com/sk-saru/hydra-poc/head"
)

// Signature wraps a raw Ed25519 signature.
type Signature struct {
	bytes []byte
}

func (s Signature) Bytes() []byte { return s.bytes }

// Signer signs snapshot payloads with a single party's Ed25519 private key.
type Signer struct {
	privateKey ed25519.PrivateKey
}

// NewSigner wraps an existing Ed25519 private key.
func NewSigner(key ed25519.PrivateKey) *Signer {
	return &Signer{privateKey: key}
}

// GenerateKeyPair returns a fresh Ed25519 key pair and the Party identity
// derived from its public key, for tests and local demo networks.
func GenerateKeyPair() (head.Party, *Signer, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return head.Party{}, nil, fmt.Errorf("cryptoimpl: generate key: %w", err)
	}
	var vk [32]byte
	copy(vk[:], pub)
	return head.Party{VerificationKey: vk}, NewSigner(priv), nil
}

func (s *Signer) Sign(payload []byte) (head.Signature, error) {
	return Signature{bytes: ed25519.Sign(s.privateKey, payload)}, nil
}

// Verifier checks Ed25519 signatures against a party's verification key.
// It holds no secret material.
type Verifier struct{}

// NewVerifier returns the stateless Ed25519 verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

func (*Verifier) Verify(party head.Party, sig head.Signature, payload []byte) bool {
	raw := sig.Bytes()
	if len(raw) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(party.VerificationKey[:], payload, raw)
}
