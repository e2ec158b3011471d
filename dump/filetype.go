package dump

import "strings"

// AbsoluteLoadAddress is where RISC OS loads Absolute (,ff8)
// executable images.
const AbsoluteLoadAddress = 0x8000

// DefaultBaseAddress returns the base address implied by a RISC OS
// filetype suffix on filename: Absolute images default to
// AbsoluteLoadAddress, everything else to 0. The engine never sniffs
// file types itself; callers pass the result into Config.
func DefaultBaseAddress(filename string) int64 {
	if strings.HasSuffix(strings.ToLower(filename), ",ff8") {
		return AbsoluteLoadAddress
	}
	return 0
}
