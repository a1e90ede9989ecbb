package rpath

import (
	"fmt"
	"os"
	"path/filepath"
)

func ExecutableDir() (string, error) {
	exe_path, err := os.Executable()
	if err != nil {
		return "",
			fmt.Errorf("Can't find executable's location. Error: %w", err)
	}
	return filepath.Dir(exe_path), nil
}

// Resolve returns path unchanged if it is absolute or base is empty,
// otherwise joins it onto base.
func Resolve(base, path string) string {
	if base == "" || filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
