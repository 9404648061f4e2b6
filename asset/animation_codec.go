// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

// animation_codec.go implements the binary animation format from spec §6,
// grounded the same way as geometry_codec.go: a CBOR header (fxamacker/cbor)
// followed by raw per-sampler keyframe payloads and trailing name bytes.

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// SamplerKind selects which transform component a sampler drives.
type SamplerKind uint8

const (
	SamplerTranslation SamplerKind = 0
	SamplerRotation    SamplerKind = 1
	SamplerScale       SamplerKind = 2
)

// Interpolation selects how a sampler's keyframes are blended between.
type Interpolation uint8

const (
	InterpolationLinear Interpolation = 0
	InterpolationStep   Interpolation = 1
)

// AnimationHeader is the CBOR-encoded prefix of the binary animation format.
type AnimationHeader struct {
	Hash         uint64 `cbor:"hash"`
	Samplers     uint64 `cbor:"samplers"`
	TargetJoints uint64 `cbor:"target_joints"`
	NameLength   uint64 `cbor:"name_length"`
}

// AnimationSampler is one channel of a skeletal animation clip: a sequence
// of (time, value) keyframes driving one joint's translation, rotation or
// scale.
type AnimationSampler struct {
	Kind          SamplerKind
	Interpolation Interpolation
	Times         []float32
	Values        [][4]float32 // translation/scale use [0:3], rotation uses all 4 (quaternion).
}

// Animation is a decoded skeletal animation clip: one sampler per animated
// joint channel, the joint each targets, and a display name.
type Animation struct {
	Name         string
	Samplers     []AnimationSampler
	TargetJoints []uint64
}

// EncodeAnimation writes a in the binary animation format described in spec §6.
func EncodeAnimation(a Animation) ([]byte, error) {
	var payload bytes.Buffer
	for _, s := range a.Samplers {
		payload.WriteByte(byte(s.Kind))
		payload.WriteByte(byte(s.Interpolation))
		var kf [8]byte
		binary.LittleEndian.PutUint64(kf[:], uint64(len(s.Times)))
		payload.Write(kf[:])
		width := componentWidth(s.Kind)
		for i, t := range s.Times {
			writeF32(&payload, t)
			for c := 0; c < width; c++ {
				writeF32(&payload, s.Values[i][c])
			}
		}
	}
	var targets [8]byte
	for _, j := range a.TargetJoints {
		binary.LittleEndian.PutUint64(targets[:], j)
		payload.Write(targets[:])
	}
	payload.WriteString(a.Name)

	h := fnv.New64a()
	h.Write(payload.Bytes())
	header := AnimationHeader{
		Hash:         h.Sum64(),
		Samplers:     uint64(len(a.Samplers)),
		TargetJoints: uint64(len(a.TargetJoints)),
		NameLength:   uint64(len(a.Name)),
	}
	headerBytes, err := cbor.Marshal(header)
	if err != nil {
		return nil, fmt.Errorf("animation: encode header: %w", err)
	}

	var out bytes.Buffer
	var headerLen [8]byte
	binary.LittleEndian.PutUint64(headerLen[:], uint64(len(headerBytes)))
	out.Write(headerLen[:])
	out.Write(headerBytes)
	out.Write(payload.Bytes())
	return out.Bytes(), nil
}

// DecodeAnimation parses the binary animation format and verifies the
// payload hash against the header.
func DecodeAnimation(data []byte) (Animation, AnimationHeader, error) {
	if len(data) < 8 {
		return Animation{}, AnimationHeader{}, fmt.Errorf("animation: truncated header length")
	}
	headerLen := binary.LittleEndian.Uint64(data[:8])
	rest := data[8:]
	if uint64(len(rest)) < headerLen {
		return Animation{}, AnimationHeader{}, fmt.Errorf("animation: truncated header")
	}
	var header AnimationHeader
	if err := cbor.Unmarshal(rest[:headerLen], &header); err != nil {
		return Animation{}, AnimationHeader{}, fmt.Errorf("animation: decode header: %w", err)
	}
	payload := rest[headerLen:]

	h := fnv.New64a()
	h.Write(payload)
	if h.Sum64() != header.Hash {
		return Animation{}, header, fmt.Errorf("animation: hash mismatch")
	}

	r := bytes.NewReader(payload)
	samplers := make([]AnimationSampler, header.Samplers)
	for i := range samplers {
		kindByte, err := r.ReadByte()
		if err != nil {
			return Animation{}, header, fmt.Errorf("animation: truncated sampler kind: %w", err)
		}
		interpByte, err := r.ReadByte()
		if err != nil {
			return Animation{}, header, fmt.Errorf("animation: truncated sampler interpolation: %w", err)
		}
		var kfBuf [8]byte
		if _, err := io.ReadFull(r, kfBuf[:]); err != nil {
			return Animation{}, header, fmt.Errorf("animation: truncated keyframe count: %w", err)
		}
		keyframes := binary.LittleEndian.Uint64(kfBuf[:])
		kind := SamplerKind(kindByte)
		width := componentWidth(kind)
		times := make([]float32, keyframes)
		values := make([][4]float32, keyframes)
		for k := range times {
			t, err := readF32(r)
			if err != nil {
				return Animation{}, header, err
			}
			times[k] = t
			for c := 0; c < width; c++ {
				v, err := readF32(r)
				if err != nil {
					return Animation{}, header, err
				}
				values[k][c] = v
			}
		}
		samplers[i] = AnimationSampler{Kind: kind, Interpolation: Interpolation(interpByte), Times: times, Values: values}
	}

	targets := make([]uint64, header.TargetJoints)
	var tb [8]byte
	for i := range targets {
		if _, err := io.ReadFull(r, tb[:]); err != nil {
			return Animation{}, header, fmt.Errorf("animation: truncated target joints: %w", err)
		}
		targets[i] = binary.LittleEndian.Uint64(tb[:])
	}

	nameBytes := make([]byte, header.NameLength)
	if _, err := io.ReadFull(r, nameBytes); err != nil {
		return Animation{}, header, fmt.Errorf("animation: truncated name: %w", err)
	}

	return Animation{Name: string(nameBytes), Samplers: samplers, TargetJoints: targets}, header, nil
}

func componentWidth(kind SamplerKind) int {
	if kind == SamplerRotation {
		return 4
	}
	return 3
}
