package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/protocompat/pkg/domain"
)

// Source implements ports.GraphSource over the local filesystem.
// References are paths; relative ones are resolved against Root.
type Source struct {
	Root string
}

// NewSource creates a source rooted at root. An empty root means the working directory.
func NewSource(root string) *Source {
	if root == "" {
		root = "."
	}
	return &Source{Root: root}
}

func (s *Source) path(ref string) string {
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(s.Root, ref)
}

// Read returns the content of the description file.
func (s *Source) Read(ctx context.Context, ref string) ([]byte, error) {
	if ref == "" {
		return nil, fmt.Errorf("empty reference: %w", domain.ErrDescriptionNotFound)
	}
	data, err := os.ReadFile(s.path(ref))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", ref, domain.ErrDescriptionNotFound)
		}
		return nil, fmt.Errorf("failed to read description %s: %w", ref, err)
	}
	return data, nil
}

// List walks Root and returns every .json, .yaml and .yml file, relative to Root.
func (s *Source) List(ctx context.Context) ([]string, error) {
	var refs []string
	err := filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != s.Root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json", ".yaml", ".yml":
			rel, err := filepath.Rel(s.Root, path)
			if err != nil {
				return err
			}
			refs = append(refs, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list descriptions: %w", err)
	}
	sort.Strings(refs)
	return refs, nil
}
