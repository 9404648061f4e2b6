// SPDX-FileCopyrightText : © 2022-2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package render

// uniform.go replaces the teacher's load.PassUniform/load.PacketUniform enums
// (previously imported from the now-removed load package) with local
// equivalents sized for the scene/skeletal-animation data this module
// actually produces (spec §4.5/§4.8): camera and light data per pass, model
// and joint-matrix data per packet.

// PassUniform indexes the per-renderpass uniform slots written into Pass.
type PassUniform int

const (
	PassUniformView PassUniform = iota
	PassUniformProjection
	PassUniformViewPosition
	PassUniformLights
	PassUniforms // sentinel: count of pass uniform slots.
)

// PacketUniform indexes the per-draw-call uniform slots written into Packet.
type PacketUniform int

const (
	PacketUniformModel PacketUniform = iota
	PacketUniformNormal
	PacketUniformJoints // skinned packets only: joint matrix array.
	PacketUniforms      // sentinel: count of packet uniform slots.
)
