package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tebeka/atexit"

	"github.com/xiaobogaga/hackvm/vmtranslator/internal"
)

const (
	vmExt   = ".vm"
	asmExt  = ".asm"
	hackExt = ".hack"
)

var errNoSource = errors.New("no .vm file found")

// program is what the driver reads from a path: the units to translate and
// the name of the output file without extension.
type program struct {
	units      []internal.Unit
	outputBase string
}

// readProgram reads one .vm file, or every .vm file of a directory in name
// order. The module name of each unit is the file name without extension. A
// file translates to <dir>/<name>.asm, a directory to <dir>/<dirname>.asm.
func readProgram(path string) (*program, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		unit, err := readUnit(path)
		if err != nil {
			return nil, err
		}
		return &program{
			units:      []internal.Unit{unit},
			outputBase: strings.TrimSuffix(path, filepath.Ext(path)),
		}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		// Ignore sub path and not vm file.
		if entry.IsDir() || filepath.Ext(entry.Name()) != vmExt {
			continue
		}
		names = append(names, entry.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %s", errNoSource, path)
	}
	sort.Strings(names)
	ret := &program{outputBase: filepath.Join(path, filepath.Base(filepath.Clean(path)))}
	for _, name := range names {
		unit, err := readUnit(filepath.Join(path, name))
		if err != nil {
			return nil, err
		}
		ret.units = append(ret.units, unit)
	}
	return ret, nil
}

func readUnit(path string) (internal.Unit, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return internal.Unit{}, err
	}
	base := filepath.Base(path)
	return internal.Unit{
		Module: strings.TrimSuffix(base, filepath.Ext(base)),
		Source: string(content),
	}, nil
}

// saveTo writes content to a temporary file next to path and renames it into
// place, so a failed run never leaves a partial output file behind.
func saveTo(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	atexit.Register(func() { os.Remove(tmpName) })
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0666); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
