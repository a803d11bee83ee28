package fat

import "bytes"

// oemName covers the eight bytes following the jump instruction, where
// exFAT volumes store the "EXFAT   " filesystem name.
var oemName = FieldSpec{Name: "oem_name", Start: 3, End: 11, Enc: EncString}

var exfatSignature = []byte("EXFAT")

// DetectKind probes the OEM name region of a boot sector and reports the
// volume flavor. Detection never fails: sectors too short to carry the
// region, or carrying anything other than the exFAT marker, are treated
// as FAT.
func DetectKind(sector []byte) Kind {
	if len(sector) < oemName.End {
		return KindFAT
	}
	if bytes.Contains(oemName.slice(sector), exfatSignature) {
		return KindExFAT
	}
	return KindFAT
}
