package diskstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quietmark/litesearch/pkg/fs"
)

// errInvalidOptions is wrapped by Open when Options are unusable.
var errInvalidOptions = errors.New("diskstore: invalid options")

const osAppendCreateRDWR = os.O_APPEND | os.O_CREATE | os.O_RDWR

func ensureDir(fsys fs.FS, dir string) error {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %q: %w", dir, err)
	}

	return nil
}

func joinPath(dir, name string) string {
	return filepath.Join(dir, name)
}
