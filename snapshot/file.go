package snapshot

import (
	"fmt"
	"os"

	"github.com/google/renameio/v2"

	"github.com/fulldump/studentdb/record"
)

// SaveFile replaces filename atomically, readers see either the previous
// snapshot or the new one.
func SaveFile(filename string, codec Codec, records []*record.Record) error {

	f, err := renameio.NewPendingFile(filename, renameio.WithPermissions(0644))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileUnavailable, err)
	}
	defer f.Cleanup()

	err = codec.Encode(f, records)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	err = f.CloseAtomicallyReplace()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileUnavailable, err)
	}

	return nil
}

func LoadFile(filename string, codec Codec) ([]*record.Record, []error, error) {

	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrFileUnavailable, err)
	}
	defer f.Close()

	records, skipped, err := codec.Decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read '%s': %w", ErrFileUnavailable, filename, err)
	}

	return records, skipped, nil
}
