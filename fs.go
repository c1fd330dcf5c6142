package idl

import "os"

// FS is the file-access collaborator the compiler reads sources through.
// Each path is read at most once per compilation session.
type FS interface {
	Read(path string) ([]byte, error)
}

type osFS struct{}

func (osFS) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}
