// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

// audio.go loads a raw PCM sound clip, grounded on the teacher's audio.Data
// shape (bytes + sample rate/channel metadata bound to the sound card) minus
// the cgo binding layer: this package owns only the decoded host bytes, the
// same way it owns decoded Texture pixels, leaving binding to a collaborator
// behind the audio device boundary the spec places out of scope.

import (
	"encoding/binary"
	"fmt"
)

// AudioPcm is a decoded raw PCM clip ready for upload to an audio device.
type AudioPcm struct {
	Channels   int
	SampleRate int
	BitDepth   int
	Samples    []byte
}

// pcmHeader mirrors a minimal WAV-less raw PCM container: a small binary
// header the asset pipeline writes itself, avoiding a dependency on a
// specific container format the spec does not name.
type pcmHeader struct {
	Channels   uint32
	SampleRate uint32
	BitDepth   uint32
}

const pcmHeaderSize = 12

// NewAudioPcmProvider loads a raw PCM clip: a 12-byte header (channels,
// sample rate, bit depth, all little-endian u32) followed by sample bytes.
func NewAudioPcmProvider(vfs DataSource, monitor *UriMonitor) *Provider[AudioPcm] {
	load := func(uri Uri) (*AudioPcm, []Uri, error) {
		raw := vfs.Read(uri)
		if raw == nil {
			return nil, nil, fmt.Errorf("audio: read failed: %s", uri.Value())
		}
		if len(raw) < pcmHeaderSize {
			return nil, nil, fmt.Errorf("audio: truncated header: %s", uri.Value())
		}
		header := pcmHeader{
			Channels:   binary.LittleEndian.Uint32(raw[0:4]),
			SampleRate: binary.LittleEndian.Uint32(raw[4:8]),
			BitDepth:   binary.LittleEndian.Uint32(raw[8:12]),
		}
		pcm := &AudioPcm{
			Channels:   int(header.Channels),
			SampleRate: int(header.SampleRate),
			BitDepth:   int(header.BitDepth),
			Samples:    raw[pcmHeaderSize:],
		}
		return pcm, []Uri{uri}, nil
	}
	return NewProvider[AudioPcm]("AudioPcm", vfs, monitor, load, nil)
}
