//go:build !unix

package layout

import "os"

func checkWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".layout-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
