package interfaces

import (
	"io"
	"time"
)

// FileInfo описывает файл в хранилище артефактов.
type FileInfo struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// FileStorage abstracts durable file storage for generated artifacts
// (PDFs, uploaded photos). Paths are storage-relative file names.
type FileStorage interface {
	// Write persists data under the given name, overwriting any existing file.
	Write(name string, data []byte) error

	// Open returns a reader for the named file along with its size.
	// Returns models.ErrPDFNotFound-compatible os.ErrNotExist wrapping when missing.
	Open(name string) (io.ReadCloser, int64, error)

	// Delete removes the named file. Deleting a missing file is not an error;
	// the boolean reports whether a file was actually removed.
	Delete(name string) (bool, error)

	// List enumerates all files currently in the storage root.
	List() ([]FileInfo, error)

	// Stat returns metadata for a single file.
	Stat(name string) (FileInfo, error)
}
