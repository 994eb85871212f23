// Package fixtures serves the XML document answered by offline clients.
package fixtures

import (
	"embed"
	"fmt"

	"github.com/fivetwenty-io/ews-client/internal/constants"
	"github.com/spf13/afero"
)

//go:embed simulated-response.xml
var embedded embed.FS

// Source loads a fixture document by name from a filesystem.
type Source struct {
	fs   afero.Fs
	name string
}

// Embedded returns the source of the built-in simulated response.
func Embedded() *Source {
	return &Source{
		fs:   afero.FromIOFS{FS: embedded},
		name: constants.SimulatedResponseFile,
	}
}

// File returns a source reading path from the OS filesystem.
func File(path string) *Source {
	return FromFs(afero.NewOsFs(), path)
}

// FromFs returns a source reading name from fs.
func FromFs(fs afero.Fs, name string) *Source {
	return &Source{fs: fs, name: name}
}

// Name returns the fixture name.
func (s *Source) Name() string {
	return s.name
}

// Check verifies that the fixture exists and is a regular file.
func (s *Source) Check() error {
	info, err := s.fs.Stat(s.name)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", constants.ErrFixtureNotFound, s.name, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%w: %s", constants.ErrFixtureIsDir, s.name)
	}

	return nil
}

// Load reads the whole fixture.
func (s *Source) Load() ([]byte, error) {
	data, err := afero.ReadFile(s.fs, s.name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", constants.ErrFixtureNotFound, s.name, err)
	}

	return data, nil
}
