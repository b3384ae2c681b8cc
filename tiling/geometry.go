package tiling

import "encoding/binary"

// putInt32 writes v as a little-endian int32 into buf[0:4], for the
// wire-layout AppendTo methods.
func putInt32(buf []byte, v int32) {
	binary.LittleEndian.PutUint32(buf, uint32(v))
}

// code returns the wire encoding of a BlurDirection: 0 for
// Vertical, 1 for Horizontal.
func (d BlurDirection) code() int32 { return int32(d) }

// BlurCommand is the 16-byte GPU record describing one separable blur
// pass: which task it writes, which task it reads, and which axis.
type BlurCommand struct {
	TaskID    int32
	SrcTaskID int32
	Direction BlurDirection
	_         int32 // padding, present for 16-byte struct alignment
}

const blurCommandByteSize = 16

// AppendTo serialises the command as four little-endian int32 fields
// (TaskID, SrcTaskID, Direction, padding) and appends them to buf.
func (c BlurCommand) AppendTo(buf []byte) []byte {
	var tmp [blurCommandByteSize]byte
	putInt32(tmp[0:4], c.TaskID)
	putInt32(tmp[4:8], c.SrcTaskID)
	putInt32(tmp[8:12], c.Direction.code())
	putInt32(tmp[12:16], 0)
	return append(buf, tmp[:]...)
}

// PackedLayer is one entry of the GPU packed-layer buffer: a transform
// matrix and its associated clip rect, indexed by a primitive's
// LayerIndex.
type PackedLayer struct {
	Transform     [16]float32 // row-major 4x4, device-to-layer transform
	LocalClipRect DeviceRect
}

// PrimitiveGeometry is a primitive's resolved local rect and local clip
// rect, written into the geometry buffer before any GPU block data. The
// source representation leaves these fields uninitialised until written;
// this implementation uses explicit zero-valued DeviceRects instead, since
// every field is overwritten before use and a deterministic default is no
// less correct (§9).
type PrimitiveGeometry struct {
	LocalRect     DeviceRect
	LocalClipRect DeviceRect
}

// GPUBlockSize names one of the four fixed-size GPU data block buffers a
// Frame owns, used to address variable-length per-primitive payload
// (gradient stops, border segments, glyph runs) compactly.
type GPUBlockSize uint8

const (
	Block16 GPUBlockSize = iota
	Block32
	Block64
	Block128
)

// GradientStop is one stop of a gradient's color ramp, stored in the
// Frame's gradient data buffer and addressed by GPU address from the
// gradient primitive's metadata.
type GradientStop struct {
	Offset float32
	Color  [4]float32
}

// ResourceRect is a texture-space UV rect for one resolved image/glyph
// resource, stored in the Frame's resource-rect buffer.
type ResourceRect struct {
	U0, V0, U1, V1 float32
}

// DeferredResolve names an external image resource whose texture binding
// could not be resolved at encode time and must be resolved by the
// renderer just before submission (e.g. a video frame supplied through a
// platform-specific external texture).
type DeferredResolve struct {
	Key ImageMaskKey
}
