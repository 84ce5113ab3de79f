package export

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/corail-counting/corail/pkg/cordf"
	"github.com/gocarina/gocsv"
)

// utf8ByteOrderMark keeps spreadsheet tools from mangling the accented
// station names.
var utf8ByteOrderMark = []byte{0xEF, 0xBB, 0xBF}

func init() {
	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		writer := csv.NewWriter(out)
		writer.Comma = ';'

		return gocsv.NewSafeCSVWriter(writer)
	})
}

// Marshal serialises mission records into the semicolon-separated export
// file: UTF-8 with byte-order marker, header row, one line per station log.
func Marshal(records []cordf.MissionRecord) ([]byte, error) {
	var buffer bytes.Buffer

	buffer.Write(utf8ByteOrderMark)

	rows := ToRows(records)
	if err := gocsv.Marshal(&rows, &buffer); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}
