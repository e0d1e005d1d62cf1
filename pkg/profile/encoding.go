package profile

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText turns raw survey bytes into NFC-normalised UTF-8. Files that are not
// valid UTF-8 are read as ISO-8859-1, the encoding spreadsheet exports in the field use.
func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	if !utf8.Valid(data) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrEncoding, err)
		}
		data = decoded
	}

	// "ubicación" may arrive with a combining accent; compare headers in composed form
	return norm.NFC.String(string(data)), nil
}
