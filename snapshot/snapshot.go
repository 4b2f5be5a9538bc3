package snapshot

import (
	"errors"
	"fmt"
	"io"

	"github.com/fulldump/studentdb/record"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	ErrFileUnavailable = errors.New("file unavailable")
	ErrMalformedBlock  = errors.New("malformed block")
	ErrUnknownFormat   = errors.New("unknown format")
)

// Codec turns a list of records into a snapshot and back.
//
// Decode keeps going after a bad entry: every entry it could not restore is
// reported in skipped and err is only set when reading itself fails.
type Codec interface {
	Encode(w io.Writer, records []*record.Record) error
	Decode(r io.Reader) (records []*record.Record, skipped []error, err error)
}

func CodecByName(name string) (Codec, error) {
	switch name {
	case FormatText, "":
		return Text, nil
	case FormatJSON:
		return JSON, nil
	}
	return nil, fmt.Errorf("%w: '%s', must be '%s' or '%s'", ErrUnknownFormat, name, FormatText, FormatJSON)
}

// maxLineSize bounds a single snapshot line while decoding
const maxLineSize = 16 * 1024 * 1024
