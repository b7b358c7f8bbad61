// Package config manages packmerger configuration and filesystem paths.
//
// Configuration includes the locations of the web service's data
// directories, which can be customized via environment variables. The
// default root is ~/.packmerger/ containing uploads/ and outputs/.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the filesystem paths used by the packmerger service.
type Paths struct {
	// Root is the base directory for all packmerger data (default: ~/.packmerger)
	Root string

	// Uploads is the directory holding per-session uploaded packs
	Uploads string

	// Outputs is the directory holding merged pack archives
	Outputs string

	// Config is the path to the service config file
	Config string
}

// DefaultPaths returns the default paths for packmerger.
// Paths can be overridden with environment variables:
// - PACKMERGER_ROOT: Override the root directory
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("PACKMERGER_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".packmerger")
	}

	return &Paths{
		Root:    root,
		Uploads: filepath.Join(root, "uploads"),
		Outputs: filepath.Join(root, "outputs"),
		Config:  filepath.Join(root, "config.yaml"),
	}, nil
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.Root,
		p.Uploads,
		p.Outputs,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
