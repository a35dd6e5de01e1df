package inspect

import (
	"encoding/binary"
	"io"
	"os"
)

// PE header constants for the native-library walk.
const (
	dosMagic      = 0x5A4D     // "MZ"
	peSignature   = 0x00004550 // "PE\0\0"
	peOffsetField = 0x3C       // location of the 4-byte PE header offset

	machineI386  = 0x014C
	machineAMD64 = 0x8664
)

// IsNativeLibrary reports whether the file at path is a native or
// foreign-architecture library that must not be loaded as a plugin module.
//
// The check walks the PE header: a file whose machine field names a
// supported architecture, a file that is not a PE image at all, a missing
// file, and any I/O failure all report false — the loader's own error
// handling deals with genuinely unloadable files. Only a well-formed PE
// image for an unsupported machine reports true.
func IsNativeLibrary(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	var mz uint16
	if err := binary.Read(f, binary.LittleEndian, &mz); err != nil {
		return false
	}
	if mz != dosMagic {
		return false
	}

	if _, err := f.Seek(peOffsetField, io.SeekStart); err != nil {
		return false
	}
	var peOffset uint32
	if err := binary.Read(f, binary.LittleEndian, &peOffset); err != nil {
		return false
	}

	if _, err := f.Seek(int64(peOffset), io.SeekStart); err != nil {
		return false
	}
	var signature uint32
	if err := binary.Read(f, binary.LittleEndian, &signature); err != nil {
		return false
	}
	if signature != peSignature {
		return false
	}

	var machine uint16
	if err := binary.Read(f, binary.LittleEndian, &machine); err != nil {
		return false
	}

	switch machine {
	case machineI386, machineAMD64:
		return false
	default:
		return true
	}
}
