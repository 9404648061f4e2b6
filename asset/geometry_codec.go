// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

// geometry_codec.go implements the binary geometry format from spec §6:
// a fixed CBOR header (grounded on shcv-viewport's use of fxamacker/cbor/v2
// for compact structured headers) followed by raw little-endian payload
// arrays (grounded on the teacher's mesh.go buffer-upload layout), in
// declaration order: positions, rgbas, normals, uvs, indices, then joints
// and weights if the header says joints > 0.

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"io"
	"math"

	"github.com/fxamacker/cbor/v2"
)

// GeometryHeader is the CBOR-encoded prefix of the binary geometry format.
type GeometryHeader struct {
	Hash      uint64 `cbor:"hash"`
	Positions uint64 `cbor:"positions"`
	Indices   uint64 `cbor:"indices"`
	Joints    uint64 `cbor:"joints"`
	Weights   uint64 `cbor:"weights"`
}

// Geometry is the decoded payload of a binary geometry blob: one vertex
// buffer's worth of parallel attribute arrays plus an optional index buffer
// and skinning data.
type Geometry struct {
	Positions [][3]float32
	Rgbas     [][4]float32
	Normals   [][3]float32
	Uvs       [][2]float32
	Indices   []uint32
	Joints    [][4]uint32
	Weights   [][4]float32
}

// EncodeGeometry writes g in the binary geometry format described in spec §6.
func EncodeGeometry(g Geometry) ([]byte, error) {
	var payload bytes.Buffer
	writeVec3s(&payload, g.Positions)
	writeVec4s(&payload, g.Rgbas)
	writeVec3s(&payload, g.Normals)
	writeVec2s(&payload, g.Uvs)
	writeU32s(&payload, g.Indices)
	hasJoints := len(g.Joints) > 0
	if hasJoints {
		writeUvec4s(&payload, g.Joints)
		writeVec4s(&payload, g.Weights)
	}

	h := fnv.New64a()
	h.Write(payload.Bytes())
	header := GeometryHeader{
		Hash:      h.Sum64(),
		Positions: uint64(len(g.Positions)),
		Indices:   uint64(len(g.Indices)),
	}
	if hasJoints {
		header.Joints = uint64(len(g.Joints))
		header.Weights = uint64(len(g.Weights))
	}
	headerBytes, err := cbor.Marshal(header)
	if err != nil {
		return nil, fmt.Errorf("geometry: encode header: %w", err)
	}

	var out bytes.Buffer
	var headerLen [8]byte
	binary.LittleEndian.PutUint64(headerLen[:], uint64(len(headerBytes)))
	out.Write(headerLen[:])
	out.Write(headerBytes)
	out.Write(payload.Bytes())
	return out.Bytes(), nil
}

// DecodeGeometry parses the binary geometry format and verifies the payload
// hash against the header, matching spec §6/S6's round-trip contract.
func DecodeGeometry(data []byte) (Geometry, GeometryHeader, error) {
	if len(data) < 8 {
		return Geometry{}, GeometryHeader{}, fmt.Errorf("geometry: truncated header length")
	}
	headerLen := binary.LittleEndian.Uint64(data[:8])
	rest := data[8:]
	if uint64(len(rest)) < headerLen {
		return Geometry{}, GeometryHeader{}, fmt.Errorf("geometry: truncated header")
	}
	var header GeometryHeader
	if err := cbor.Unmarshal(rest[:headerLen], &header); err != nil {
		return Geometry{}, GeometryHeader{}, fmt.Errorf("geometry: decode header: %w", err)
	}
	payload := rest[headerLen:]

	h := fnv.New64a()
	h.Write(payload)
	if h.Sum64() != header.Hash {
		return Geometry{}, header, fmt.Errorf("geometry: hash mismatch")
	}

	r := bytes.NewReader(payload)
	var g Geometry
	var err error
	if g.Positions, err = readVec3s(r, header.Positions); err != nil {
		return Geometry{}, header, err
	}
	if g.Rgbas, err = readVec4s(r, header.Positions); err != nil {
		return Geometry{}, header, err
	}
	if g.Normals, err = readVec3s(r, header.Positions); err != nil {
		return Geometry{}, header, err
	}
	if g.Uvs, err = readVec2s(r, header.Positions); err != nil {
		return Geometry{}, header, err
	}
	if g.Indices, err = readU32s(r, header.Indices); err != nil {
		return Geometry{}, header, err
	}
	if header.Joints > 0 {
		if g.Joints, err = readUvec4s(r, header.Joints); err != nil {
			return Geometry{}, header, err
		}
		if g.Weights, err = readVec4s(r, header.Weights); err != nil {
			return Geometry{}, header, err
		}
	}
	return g, header, nil
}

func writeVec2s(buf *bytes.Buffer, v [][2]float32) {
	for _, e := range v {
		writeF32(buf, e[0])
		writeF32(buf, e[1])
	}
}

func writeVec3s(buf *bytes.Buffer, v [][3]float32) {
	for _, e := range v {
		writeF32(buf, e[0])
		writeF32(buf, e[1])
		writeF32(buf, e[2])
	}
}

func writeVec4s(buf *bytes.Buffer, v [][4]float32) {
	for _, e := range v {
		writeF32(buf, e[0])
		writeF32(buf, e[1])
		writeF32(buf, e[2])
		writeF32(buf, e[3])
	}
}

func writeUvec4s(buf *bytes.Buffer, v [][4]uint32) {
	for _, e := range v {
		var b [4]byte
		for i := 0; i < 4; i++ {
			binary.LittleEndian.PutUint32(b[:], e[i])
			buf.Write(b[:])
		}
	}
}

func writeU32s(buf *bytes.Buffer, v []uint32) {
	var b [4]byte
	for _, e := range v {
		binary.LittleEndian.PutUint32(b[:], e)
		buf.Write(b[:])
	}
}

func writeF32(buf *bytes.Buffer, f float32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(f))
	buf.Write(b[:])
}

func readVec2s(r *bytes.Reader, n uint64) ([][2]float32, error) {
	out := make([][2]float32, n)
	for i := range out {
		var err error
		if out[i][0], err = readF32(r); err != nil {
			return nil, err
		}
		if out[i][1], err = readF32(r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readVec3s(r *bytes.Reader, n uint64) ([][3]float32, error) {
	out := make([][3]float32, n)
	for i := range out {
		for j := 0; j < 3; j++ {
			f, err := readF32(r)
			if err != nil {
				return nil, err
			}
			out[i][j] = f
		}
	}
	return out, nil
}

func readVec4s(r *bytes.Reader, n uint64) ([][4]float32, error) {
	out := make([][4]float32, n)
	for i := range out {
		for j := 0; j < 4; j++ {
			f, err := readF32(r)
			if err != nil {
				return nil, err
			}
			out[i][j] = f
		}
	}
	return out, nil
}

func readUvec4s(r *bytes.Reader, n uint64) ([][4]uint32, error) {
	out := make([][4]uint32, n)
	var b [4]byte
	for i := range out {
		for j := 0; j < 4; j++ {
			if _, err := io.ReadFull(r, b[:]); err != nil {
				return nil, fmt.Errorf("geometry: truncated joints: %w", err)
			}
			out[i][j] = binary.LittleEndian.Uint32(b[:])
		}
	}
	return out, nil
}

func readU32s(r *bytes.Reader, n uint64) ([]uint32, error) {
	out := make([]uint32, n)
	var b [4]byte
	for i := range out {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return nil, fmt.Errorf("geometry: truncated indices: %w", err)
		}
		out[i] = binary.LittleEndian.Uint32(b[:])
	}
	return out, nil
}

func readF32(r *bytes.Reader) (float32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, fmt.Errorf("geometry: truncated payload: %w", err)
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b[:])), nil
}
