// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hashing

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/ripemd160"
)

const (
	// HashLen is the number of bytes in a sha256 hash
	HashLen = sha256.Size
	// AddrLen is the number of bytes in a ripemd160 hash
	AddrLen = ripemd160.Size
)

// Hash256 is a sha256 hash
type Hash256 = [HashLen]byte

// Hash160 is a ripemd160 hash
type Hash160 = [AddrLen]byte

// ComputeHash256Array computes the sha256 hash of buf.
func ComputeHash256Array(buf []byte) Hash256 {
	return sha256.Sum256(buf)
}

// ComputeHash256 computes the sha256 hash of buf.
func ComputeHash256(buf []byte) []byte {
	arr := ComputeHash256Array(buf)
	return arr[:]
}

// ComputeHash160Array computes the ripemd160 hash of the sha256 hash of buf.
func ComputeHash160Array(buf []byte) Hash160 {
	h := ComputeHash160(buf)
	var arr Hash160
	copy(arr[:], h)
	return arr
}

// ComputeHash160 computes the ripemd160 hash of the sha256 hash of buf.
func ComputeHash160(buf []byte) []byte {
	ripe := ripemd160.New()
	if _, err := ripe.Write(ComputeHash256(buf)); err != nil {
		panic(fmt.Errorf("failed to compute hash160: %w", err))
	}
	return ripe.Sum(nil)
}
