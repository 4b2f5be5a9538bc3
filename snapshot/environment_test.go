package snapshot

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

func Environment(f func(filename string)) {
	filename := filepath.Join(os.TempDir(), "studentdb-"+uuid.New().String())
	defer os.Remove(filename)

	f(filename)
}
