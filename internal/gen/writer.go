package gen

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// GeneratedFile is a rendered artifact. Filename is slash-separated and
// relative to the output directory.
type GeneratedFile struct {
	Filename string
	Content  []byte
}

// WriteFiles writes all generated files below outputDir, creating
// directories as needed. Existing files are overwritten.
func WriteFiles(fsys afero.Fs, files []GeneratedFile, outputDir string) error {
	for _, file := range files {
		outputPath := filepath.Join(outputDir, filepath.FromSlash(file.Filename))

		err := fsys.MkdirAll(filepath.Dir(outputPath), dirPerm)
		if err != nil {
			return fmt.Errorf("creating directory for %s: %w", file.Filename, err)
		}

		err = afero.WriteFile(fsys, outputPath, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}
