// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package hal

// Offset is a byte offset of a register from the peripheral base address.
type Offset uint32

// DMA2D register offsets (RM0090 / RM0433).
const (
	CR      Offset = 0x00 // control
	ISR     Offset = 0x04 // interrupt status
	IFCR    Offset = 0x08 // interrupt flag clear
	FGMAR   Offset = 0x0C // foreground memory address
	FGOR    Offset = 0x10 // foreground line offset
	BGMAR   Offset = 0x14 // background memory address
	BGOR    Offset = 0x18 // background line offset
	FGPFCCR Offset = 0x1C // foreground PFC control
	FGCOLR  Offset = 0x20 // foreground color
	BGPFCCR Offset = 0x24 // background PFC control
	BGCOLR  Offset = 0x28 // background color
	FGCMAR  Offset = 0x2C // foreground CLUT memory address
	BGCMAR  Offset = 0x30 // background CLUT memory address
	OPFCCR  Offset = 0x34 // output PFC control
	OCOLR   Offset = 0x38 // output color
	OMAR    Offset = 0x3C // output memory address
	OOR     Offset = 0x40 // output line offset
	NLR     Offset = 0x44 // number of lines
	LWR     Offset = 0x48 // line watermark
	AMTCR   Offset = 0x4C // AHB master timer configuration

	// RegisterSpan is the size of the register window in bytes.
	RegisterSpan = 0x50
)

var offsetNames = map[Offset]string{
	CR: "CR", ISR: "ISR", IFCR: "IFCR",
	FGMAR: "FGMAR", FGOR: "FGOR", BGMAR: "BGMAR", BGOR: "BGOR",
	FGPFCCR: "FGPFCCR", FGCOLR: "FGCOLR", BGPFCCR: "BGPFCCR", BGCOLR: "BGCOLR",
	FGCMAR: "FGCMAR", BGCMAR: "BGCMAR",
	OPFCCR: "OPFCCR", OCOLR: "OCOLR", OMAR: "OMAR", OOR: "OOR",
	NLR: "NLR", LWR: "LWR", AMTCR: "AMTCR",
}

// String returns the register mnemonic.
func (o Offset) String() string {
	if n, ok := offsetNames[o]; ok {
		return n
	}
	return "UNKNOWN"
}

// CR bits.
const (
	CRStart uint32 = 1 << 0
	CRSusp  uint32 = 1 << 1
	CRAbort uint32 = 1 << 2
	CRTEIE  uint32 = 1 << 8
	CRTCIE  uint32 = 1 << 9

	CRModePos         = 16
	CRModeMask uint32 = 0x3 << CRModePos
)

// Mode is the transfer mode held in CR.MODE.
type Mode uint32

const (
	// ModeM2M copies foreground memory to output memory.
	ModeM2M Mode = 0
	// ModeM2MPFC copies foreground memory with pixel format conversion.
	ModeM2MPFC Mode = 1
	// ModeM2MBlend blends foreground over background into output memory.
	ModeM2MBlend Mode = 2
	// ModeR2M fills output memory with OCOLR.
	ModeR2M Mode = 3
)

// String returns a short mode name.
func (m Mode) String() string {
	switch m {
	case ModeM2M:
		return "m2m"
	case ModeM2MPFC:
		return "m2m-pfc"
	case ModeM2MBlend:
		return "m2m-blend"
	case ModeR2M:
		return "r2m"
	default:
		return "invalid"
	}
}

// ControlWord returns the CR value selecting m, without START.
func ControlWord(m Mode) uint32 {
	return uint32(m) << CRModePos & CRModeMask
}

// ModeOf extracts the mode from a CR value.
func ModeOf(cr uint32) Mode {
	return Mode((cr & CRModeMask) >> CRModePos)
}

// ISR and IFCR bits share positions.
const (
	FlagTE  uint32 = 1 << 0 // transfer error
	FlagTC  uint32 = 1 << 1 // transfer complete
	FlagTW  uint32 = 1 << 2 // transfer watermark
	FlagCAE uint32 = 1 << 3 // CLUT access error
	FlagCTC uint32 = 1 << 4 // CLUT transfer complete
	FlagCE  uint32 = 1 << 5 // configuration error

	FlagAll = FlagTE | FlagTC | FlagTW | FlagCAE | FlagCTC | FlagCE
)

// PFCCR field positions, shared by FGPFCCR, BGPFCCR and OPFCCR
// (OPFCCR only carries CM, AI and RBS).
const (
	PFCCRCMPos     = 0
	PFCCRCMMask    = uint32(0xF) << PFCCRCMPos
	PFCCRAMPos     = 16
	PFCCRAMMask    = uint32(0x3) << PFCCRAMPos
	PFCCRAIPos     = 20
	PFCCRRBSPos    = 21
	PFCCRAlphaPos  = 24
	PFCCRAlphaMask = uint32(0xFF) << PFCCRAlphaPos

	OPFCCRCMMask = uint32(0x7)
)

// ColorMode is a hardware pixel format code as stored in PFCCR.CM.
type ColorMode uint32

// Hardware color mode codes.
const (
	CMARGB8888 ColorMode = 0x0
	CMRGB888   ColorMode = 0x1
	CMRGB565   ColorMode = 0x2
	CMARGB1555 ColorMode = 0x3
	CMARGB4444 ColorMode = 0x4
	CML8       ColorMode = 0x5
	CMAL44     ColorMode = 0x6
	CMAL88     ColorMode = 0x7
	CML4       ColorMode = 0x8
	CMA8       ColorMode = 0x9
	CMA4       ColorMode = 0xA

	// CMUnsupported marks an abstract format with no hardware code.
	CMUnsupported ColorMode = 0xFF
)

// String returns the hardware format name.
func (c ColorMode) String() string {
	switch c {
	case CMARGB8888:
		return "ARGB8888"
	case CMRGB888:
		return "RGB888"
	case CMRGB565:
		return "RGB565"
	case CMARGB1555:
		return "ARGB1555"
	case CMARGB4444:
		return "ARGB4444"
	case CML8:
		return "L8"
	case CMAL44:
		return "AL44"
	case CMAL88:
		return "AL88"
	case CML4:
		return "L4"
	case CMA8:
		return "A8"
	case CMA4:
		return "A4"
	default:
		return "UNSUPPORTED"
	}
}

// PFC is the decoded content of a pixel format converter control register.
type PFC struct {
	CM        ColorMode
	AlphaMode uint32 // 0 keep, 1 replace, 2 multiply
	Alpha     uint8
	RBS       bool // red/blue swap
}

// Encode packs p into a PFCCR word.
func (p PFC) Encode() uint32 {
	v := uint32(p.CM) << PFCCRCMPos & PFCCRCMMask
	v |= p.AlphaMode << PFCCRAMPos & PFCCRAMMask
	v |= uint32(p.Alpha) << PFCCRAlphaPos
	if p.RBS {
		v |= 1 << PFCCRRBSPos
	}
	return v
}

// DecodePFC unpacks a PFCCR word.
func DecodePFC(v uint32) PFC {
	return PFC{
		CM:        ColorMode((v & PFCCRCMMask) >> PFCCRCMPos),
		AlphaMode: (v & PFCCRAMMask) >> PFCCRAMPos,
		Alpha:     uint8(v >> PFCCRAlphaPos),
		RBS:       v&(1<<PFCCRRBSPos) != 0,
	}
}

// NLR field positions: PL (pixels per line, 14 bits) and NL (lines, 16 bits).
const (
	NLRNLPos         = 0
	NLRNLMask        = uint32(0xFFFF) << NLRNLPos
	NLRPLPos         = 16
	NLRPLMask        = uint32(0x3FFF) << NLRPLPos
	MaxPixelsPerLine = 0x3FFF
	MaxLines         = 0xFFFF
)

// Geometry packs pixels per line and number of lines into an NLR word.
func Geometry(pixelsPerLine, lines int) uint32 {
	return uint32(pixelsPerLine)<<NLRPLPos&NLRPLMask | uint32(lines)<<NLRNLPos&NLRNLMask
}

// SplitGeometry unpacks an NLR word.
func SplitGeometry(v uint32) (pixelsPerLine, lines int) {
	return int((v & NLRPLMask) >> NLRPLPos), int((v & NLRNLMask) >> NLRNLPos)
}

// OORMask is the width of the line offset field.
const OORMask uint32 = 0xFFFF
