package authoring

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExportFilename is the name offered for a downloaded batch.
const ExportFilename = "nieuwe_vragen.json"

// Exporter hands a finished batch to the author.
type Exporter interface {
	Export(filename string, data []byte) error
}

// DirExporter writes exports into a directory. Like a browser download it
// never overwrites an earlier file: "name.json" becomes "name (1).json", etc.
type DirExporter struct {
	Dir string

	// LastPath is the file written by the most recent successful Export.
	LastPath string
}

// createExport opens a new export file, failing with os.ErrExist when taken.
var createExport = func(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
}

func (e *DirExporter) Export(filename string, data []byte) error {
	if err := os.MkdirAll(e.Dir, 0755); err != nil {
		return err
	}
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	for n := 0; ; n++ {
		name := filename
		if n > 0 {
			name = fmt.Sprintf("%s (%d)%s", base, n, ext)
		}
		path := filepath.Join(e.Dir, name)
		f, err := createExport(path)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return err
		}
		if err := writeAndClose(f, data); err != nil {
			os.Remove(path)
			return err
		}
		e.LastPath = path
		return nil
	}
}

func writeAndClose(w io.WriteCloser, data []byte) error {
	_, err := w.Write(data)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err
}
