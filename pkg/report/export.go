package report

import (
	"bytes"
	"strings"

	"github.com/hyp3rd/dailystats/internal/libs/serializer"
)

// TextFormat renders the report with Write instead of a serializer.
const TextFormat = "text"

// Export encodes rep in format: "text", or any serializer name ("json",
// "msgpack", "cbor").
func Export(rep *Report, format string, showData bool) ([]byte, error) {
	if strings.EqualFold(format, TextFormat) {
		var buf bytes.Buffer

		err := Write(&buf, rep, showData)
		if err != nil {
			return nil, err
		}

		return buf.Bytes(), nil
	}

	s, err := serializer.New(format)
	if err != nil {
		return nil, err
	}

	return s.Marshal(rep)
}

// Decode is the inverse of Export for serializer formats.
func Decode(data []byte, format string) (*Report, error) {
	s, err := serializer.New(format)
	if err != nil {
		return nil, err
	}

	var rep Report

	err = s.Unmarshal(data, &rep)
	if err != nil {
		return nil, err
	}

	return &rep, nil
}
