package project

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/slacklinehq/slackline/pkg/errors"
)

// manifest mirrors the TOML project file layout:
//
//	name = "House Build"
//
//	[[task]]
//	id = "found"
//	name = "Pour foundation"
//	duration = 4
//
//	[[task]]
//	id = "frame"
//	name = "Frame walls"
//	duration = 3
//	deps = ["found"]
type manifest struct {
	ID    string `toml:"id"`
	Name  string `toml:"name"`
	Tasks []Task `toml:"task"`
}

// ParseManifest decodes a TOML project manifest.
// A missing id is filled with a fresh UUID so ad-hoc manifests can omit it.
func ParseManifest(data []byte) (*Project, error) {
	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse project manifest")
	}

	p := &Project{ID: m.ID, Name: m.Name, Tasks: m.Tasks}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadManifest reads and parses a TOML project manifest from path.
func LoadManifest(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read manifest %s", path)
	}
	return ParseManifest(data)
}

// Load reads a project from path, dispatching on the file extension:
// .toml manifests and .json exports are both accepted.
func Load(path string) (*Project, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return LoadManifest(path)
	case ".json":
		return ImportJSON(path)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported project file %s (want .toml or .json)", path)
	}
}
