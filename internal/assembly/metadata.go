package assembly

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	peparser "github.com/saferwall/pe"
)

// assemblyTable is the metadata table number of the Assembly table.
const assemblyTable = 0x20

// assemblyFlagPublicKey marks a full public key in the Assembly row.
const assemblyFlagPublicKey = 0x0001

// identityFromCLR reads the identity out of the parsed CLR metadata of an
// image.
func identityFromCLR(clr *peparser.CLRData) (Identity, error) {
	if clr == nil || len(clr.MetadataTables) == 0 {
		return Identity{}, &FormatError{Reason: "no CLI metadata"}
	}
	table, ok := clr.MetadataTables[assemblyTable]
	if !ok || table == nil {
		return Identity{}, &FormatError{Reason: "no Assembly table (module without manifest)"}
	}
	rows, ok := table.Content.([]peparser.AssemblyTableRow)
	if !ok || len(rows) == 0 {
		return Identity{}, &FormatError{Reason: "empty Assembly table"}
	}
	return identityFromRow(rows[0], clr.MetadataStreams["#Strings"], clr.MetadataStreams["#Blob"])
}

// identityFromRow resolves the heap indexes of an Assembly row.
func identityFromRow(row peparser.AssemblyTableRow, strs, blobs []byte) (Identity, error) {
	id := Identity{
		Version: fmt.Sprintf("%d.%d.%d.%d", row.MajorVersion, row.MinorVersion, row.BuildNumber, row.RevisionNumber),
		Culture: NeutralCulture,
	}

	var err error
	if id.Name, err = readString(strs, row.Name); err != nil {
		return Identity{}, err
	}
	if id.Name == "" {
		return Identity{}, &FormatError{Reason: "assembly has no name"}
	}
	culture, err := readString(strs, row.Culture)
	if err != nil {
		return Identity{}, err
	}
	if culture != "" {
		id.Culture = culture
	}
	key, err := readBlob(blobs, row.PublicKey)
	if err != nil {
		return Identity{}, err
	}
	id.PublicKeyToken = publicKeyToken(key, row.Flags&assemblyFlagPublicKey != 0)
	return id, nil
}

func readString(heap []byte, idx uint32) (string, error) {
	if int(idx) >= len(heap) {
		if idx == 0 {
			return "", nil
		}
		return "", &FormatError{Reason: "string index out of range"}
	}
	end := bytes.IndexByte(heap[idx:], 0)
	if end < 0 {
		return "", &FormatError{Reason: "unterminated string"}
	}
	return string(heap[idx : int(idx)+end]), nil
}

// readBlob decodes the compressed length prefix of a #Blob heap entry.
func readBlob(heap []byte, idx uint32) ([]byte, error) {
	if idx == 0 {
		return nil, nil
	}
	if int(idx) >= len(heap) {
		return nil, &FormatError{Reason: "blob index out of range"}
	}
	b := heap[idx:]
	var n, hdr int
	switch {
	case b[0]&0x80 == 0:
		n, hdr = int(b[0]), 1
	case b[0]&0xC0 == 0x80 && len(b) >= 2:
		n, hdr = int(b[0]&0x3F)<<8|int(b[1]), 2
	case b[0]&0xE0 == 0xC0 && len(b) >= 4:
		n, hdr = int(b[0]&0x1F)<<24|int(b[1])<<16|int(b[2])<<8|int(b[3]), 4
	default:
		return nil, &FormatError{Reason: "bad blob length"}
	}
	if hdr+n > len(b) {
		return nil, &FormatError{Reason: "blob out of range"}
	}
	return b[hdr : hdr+n], nil
}

// publicKeyToken derives the 8-byte token: the last eight bytes of the key's
// SHA-1, reversed. An 8-byte blob without the public key flag is already a
// token.
func publicKeyToken(key []byte, fullKey bool) string {
	if len(key) == 0 {
		return ""
	}
	if !fullKey && len(key) == 8 {
		return hex.EncodeToString(key)
	}
	sum := sha1.Sum(key)
	token := make([]byte, 8)
	for i := 0; i < 8; i++ {
		token[i] = sum[len(sum)-1-i]
	}
	return hex.EncodeToString(token)
}
