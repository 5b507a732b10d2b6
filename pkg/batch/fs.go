package batch

import (
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// root is where every converter path is anchored inside its filesystem.
const root = "/"

func newFs(path string) (afero.Fs, error) {
	fs := afero.NewOsFs()
	if exists, err := afero.DirExists(fs, path); err != nil {
		return nil, newError(ErrIO, path, err)
	} else if !exists {
		return nil, newError(ErrIO, path, errors.New("dir not exists"))
	}
	return afero.NewBasePathFs(fs, path), nil
}

func writeFile(fs afero.Fs, name string, bs []byte) (err error) {
	f, err := fs.OpenFile(name, osWriteFlags, 0644)
	if err != nil {
		return err
	}
	defer func() {
		if errC := f.Close(); err == nil {
			err = errC
		}
	}()

	_, err = f.Write(bs)
	return err
}
