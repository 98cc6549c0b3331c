/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bitstring

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/multiformats/go-multibase"
)

const (
	bitsPerByte = 8
	one         = 0x1
	bitOffset   = 7

	// maxDecodedSize bounds decompression of untrusted input (16 MiB is 134M entries).
	maxDecodedSize = 16 << 20
)

// Compression selects the compression applied before text encoding.
type Compression int

const (
	// GZIP is used by StatusList2021.
	GZIP Compression = iota
	// ZLIB is used by RevocationBitmap2022 service endpoints.
	ZLIB
)

// BitString is a fixed-size bit array. Index 0 is the most significant bit of the first byte.
type BitString struct {
	bits              []byte
	compression       Compression
	multibaseEncoding multibase.Encoding
}

type Opt func(*options)

type options struct {
	compression       Compression
	multibaseEncoding multibase.Encoding
}

// WithMultibaseEncoding sets the multibase encoding.
func WithMultibaseEncoding(value multibase.Encoding) Opt {
	return func(options *options) {
		options.multibaseEncoding = value
	}
}

// WithCompression sets the compression. GZIP is the default.
func WithCompression(value Compression) Opt {
	return func(options *options) {
		options.compression = value
	}
}

func newOptions(opts []Opt) *options {
	o := &options{}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// NewBitString return bitstring.
func NewBitString(length int, opts ...Opt) *BitString {
	size := 0
	if length > 0 {
		size = 1 + ((length - 1) / bitsPerByte)
	}

	return newBitString(make([]byte, size), opts)
}

// FromBytes wraps uncompressed bits.
func FromBytes(bits []byte, opts ...Opt) *BitString {
	return newBitString(append([]byte{}, bits...), opts)
}

func newBitString(bits []byte, opts []Opt) *BitString {
	o := newOptions(opts)

	return &BitString{
		bits:              bits,
		compression:       o.compression,
		multibaseEncoding: o.multibaseEncoding,
	}
}

// DecodeBits decode bits.
func DecodeBits(encodedBits string, opts ...Opt) (*BitString, error) {
	o := newOptions(opts)

	var (
		decodedBits []byte
		err         error
	)

	if o.multibaseEncoding != multibase.Encoding(0) {
		var encoding multibase.Encoding

		encoding, decodedBits, err = multibase.Decode(encodedBits)
		if err != nil {
			return nil, err
		}

		if encoding != o.multibaseEncoding {
			return nil, fmt.Errorf("encoding not supported: %d", encoding)
		}
	} else {
		decodedBits, err = base64.RawURLEncoding.DecodeString(encodedBits)
		if err != nil {
			return nil, err
		}
	}

	bits, err := Decompress(decodedBits, o.compression)
	if err != nil {
		return nil, err
	}

	return newBitString(bits, opts), nil
}

// Decompress inflates compressed bits.
func Decompress(compressed []byte, compression Compression) ([]byte, error) {
	var (
		r   io.ReadCloser
		err error
	)

	switch compression {
	case GZIP:
		r, err = gzip.NewReader(bytes.NewReader(compressed))
	case ZLIB:
		r, err = zlib.NewReader(bytes.NewReader(compressed))
	default:
		return nil, fmt.Errorf("unsupported compression %d", compression)
	}

	if err != nil {
		return nil, fmt.Errorf("decompress bits: %w", err)
	}

	defer r.Close() //nolint:errcheck

	buf := new(bytes.Buffer)
	if _, err = buf.ReadFrom(io.LimitReader(r, maxDecodedSize+1)); err != nil {
		return nil, fmt.Errorf("decompress bits: %w", err)
	}

	if buf.Len() > maxDecodedSize {
		return nil, fmt.Errorf("decompressed bits exceed %d bytes", maxDecodedSize)
	}

	return buf.Bytes(), nil
}

// Compress deflates bits.
func Compress(bits []byte, compression Compression) ([]byte, error) {
	var (
		buf bytes.Buffer
		w   io.WriteCloser
	)

	switch compression {
	case GZIP:
		w = gzip.NewWriter(&buf)
	case ZLIB:
		w = zlib.NewWriter(&buf)
	default:
		return nil, fmt.Errorf("unsupported compression %d", compression)
	}

	if _, err := w.Write(bits); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Len returns the number of addressable bits.
func (b *BitString) Len() int {
	return len(b.bits) * bitsPerByte
}

// Bytes returns a copy of the uncompressed bits.
func (b *BitString) Bytes() []byte {
	return append([]byte{}, b.bits...)
}

// Set bit.
func (b *BitString) Set(position int, bitSet bool) error {
	if position < 0 || position/bitsPerByte > len(b.bits)-1 {
		return fmt.Errorf("position is invalid")
	}

	nByte := position / bitsPerByte
	mask := byte(one << (bitOffset - position%bitsPerByte))

	if bitSet {
		b.bits[nByte] |= mask
	} else {
		b.bits[nByte] &^= mask
	}

	return nil
}

// Get bit.
func (b *BitString) Get(position int) (bool, error) {
	if position < 0 || position/bitsPerByte > len(b.bits)-1 {
		return false, fmt.Errorf("position is invalid")
	}

	nByte := position / bitsPerByte
	mask := byte(one << (bitOffset - position%bitsPerByte))

	return b.bits[nByte]&mask != 0, nil
}

// Entry returns the bit at position and whether position is in bounds.
func (b *BitString) Entry(position int) (bool, bool) {
	v, err := b.Get(position)
	if err != nil {
		return false, false
	}

	return v, true
}

// EncodeBits encode bits.
func (b *BitString) EncodeBits() (string, error) {
	compressed, err := Compress(b.bits, b.compression)
	if err != nil {
		return "", err
	}

	if b.multibaseEncoding == multibase.Encoding(0) {
		return base64.RawURLEncoding.EncodeToString(compressed), nil
	}

	return multibase.Encode(b.multibaseEncoding, compressed)
}
