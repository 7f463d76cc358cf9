package port

import "io"

//go:generate mockgen -source=filestore.go -destination=mock/filestore.go -package=mock
type FileStore interface {
	Save(fileName string, r io.Reader) error
	Open(fileName string) (io.ReadCloser, error)
	Path(fileName string) string
	Remove(fileName string) error
}
