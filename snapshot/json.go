package snapshot

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	jsonv2 "github.com/go-json-experiment/json"

	"github.com/fulldump/studentdb/record"
)

// JSON stores one record per line
var JSON Codec = &jsonCodec{}

type jsonCodec struct{}

func (j *jsonCodec) Encode(w io.Writer, records []*record.Record) error {

	b := bufio.NewWriter(w)
	for _, r := range records {
		err := jsonv2.MarshalWrite(b, r)
		if err != nil {
			return fmt.Errorf("encode student %d: %w", r.ID, err)
		}
		b.WriteByte('\n')
	}

	return b.Flush()
}

func (j *jsonCodec) Decode(r io.Reader) ([]*record.Record, []error, error) {

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	records := []*record.Record{}
	skipped := []error{}

	n := 0
	for scanner.Scan() {
		n++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		r := &record.Record{}
		err := jsonv2.Unmarshal(line, r)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("%w: line %d: %s", ErrMalformedBlock, n, err.Error()))
			continue
		}
		r.Recalculate()

		records = append(records, r)
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	return records, skipped, nil
}
