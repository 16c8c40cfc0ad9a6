package sh

const (
	RegBits        = 32 // width of a general register
	AddrBits       = 32 // width of an address
	InstrBits      = 16 // width of one instruction word
	GPRCount       = 16
	BankedRegCount = 8
)

// Status register bits, each bound as a width-1 global in the IL.
// SR = x|D|R|B|xxxxxxxxxxxx|F|xxxxx|M|Q|IIII|xx|S|T.
const (
	SrT = "sr_t" // true/false condition, carry/borrow
	SrS = "sr_s" // MAC saturation
	SrQ = "sr_q" // divide-step state
	SrM = "sr_m" // divide-step state
	SrF = "sr_f" // FPU disable
	SrB = "sr_b" // exception/interrupt block
	SrR = "sr_r" // register bank selector (privileged)
	SrD = "sr_d" // processor mode
)

// globalRegisters are the storage locations the IL binds as globals. The
// first 16 entries are the two physical banks behind r0..r7.
var globalRegisters = []string{
	"r0b0", "r1b0", "r2b0", "r3b0", "r4b0", "r5b0", "r6b0", "r7b0",
	"r0b1", "r1b1", "r2b1", "r3b1", "r4b1", "r5b1", "r6b1", "r7b1",
	"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15", "pc",
	"sr", "gbr", "ssr", "spc", "sgr", "dbr", "vbr", "mach", "macl",
	"pr", "fpul", "fpscr",
	"fr0", "fr1", "fr2", "fr3", "fr4", "fr5", "fr6", "fr7",
	"fr8", "fr9", "fr10", "fr11", "fr12", "fr13", "fr14", "fr15",
	"xf0", "xf1", "xf2", "xf3", "xf4", "xf5", "xf6", "xf7",
	"xf8", "xf9", "xf10", "xf11", "xf12", "xf13", "xf14", "xf15",
}

// registers is the architectural (bank-blind) register file, indexed by the
// register number carried in instruction encodings.
var registers = []string{
	"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
	"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15", "pc",
	"sr", "gbr", "ssr", "spc", "sgr", "dbr", "vbr", "mach", "macl",
	"pr", "fpul", "fpscr",
	"fr0", "fr1", "fr2", "fr3", "fr4", "fr5", "fr6", "fr7",
	"fr8", "fr9", "fr10", "fr11", "fr12", "fr13", "fr14", "fr15",
	"xf0", "xf1", "xf2", "xf3", "xf4", "xf5", "xf6", "xf7",
	"xf8", "xf9", "xf10", "xf11", "xf12", "xf13", "xf14", "xf15",
}

var statusBitRegisters = []string{SrT, SrS, SrQ, SrM, SrF, SrB, SrR, SrD}

// GlobalRegisters returns the register globals the IL operates on,
// bank-qualified where banking applies.
func GlobalRegisters() []string {
	out := make([]string, len(globalRegisters))
	copy(out, globalRegisters)
	return out
}

// StatusBitRegisters returns the width-1 status flag globals.
func StatusBitRegisters() []string {
	out := make([]string, len(statusBitRegisters))
	copy(out, statusBitRegisters)
	return out
}

// AllGlobals returns every global the IL may touch: registers followed by
// status bits.
func AllGlobals() []string {
	return append(GlobalRegisters(), statusBitRegisters...)
}

// ValidGPR reports whether reg is a legal general register index.
func ValidGPR(reg uint16) bool {
	return reg < GPRCount
}

// BankedIndex reports whether reg is behind the r0..r7 banking window.
func BankedIndex(reg uint16) bool {
	return reg < BankedRegCount
}

// BankedName returns the bank-qualified global name for a banked register,
// or false when reg or bank is out of range.
func BankedName(reg uint16, bank uint8) (string, bool) {
	if !BankedIndex(reg) || bank > 1 {
		return "", false
	}
	return globalRegisters[reg+uint16(bank)*BankedRegCount], true
}

// RegisterName returns the architectural name for a register index ("r11").
// It is only defined for valid general register indices.
func RegisterName(reg uint16) (string, bool) {
	if !ValidGPR(reg) {
		return "", false
	}
	return registers[reg], true
}

// GlobalWidth returns the bit width of a named global: 1 for status bits,
// the register width for everything else.
func GlobalWidth(name string) uint8 {
	for _, bit := range statusBitRegisters {
		if name == bit {
			return 1
		}
	}
	return RegBits
}
