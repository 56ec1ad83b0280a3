package move

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	pathutils "github.com/temirov/gitmove/internal/utils/path"
)

const (
	manifestEntryIncompleteTemplateConstant = "entry %d must name both a source and a destination"
)

var errManifestEmpty = errors.New("manifest lists no moves")

// Manifest is the YAML document listing additional moves.
type Manifest struct {
	Moves []ManifestEntry `yaml:"moves"`
}

// ManifestEntry is one move listed in a manifest.
type ManifestEntry struct {
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`
}

// ManifestLoader reads manifests through an afero filesystem.
type ManifestLoader struct {
	fileSystem   afero.Fs
	homeExpander *pathutils.HomeExpander
}

// NewManifestLoader constructs a loader; nil collaborators fall back to the operating system.
func NewManifestLoader(fileSystem afero.Fs, homeExpander *pathutils.HomeExpander) *ManifestLoader {
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}
	return &ManifestLoader{fileSystem: fileSystem, homeExpander: homeExpander}
}

// LoadArguments reads the manifest at manifestPath and flattens it into source, destination arguments.
func (loader *ManifestLoader) LoadArguments(manifestPath string) ([]string, error) {
	resolvedPath := loader.homeExpander.Expand(strings.TrimSpace(manifestPath))

	manifestContent, readError := afero.ReadFile(loader.fileSystem, resolvedPath)
	if readError != nil {
		return nil, ManifestError{Path: resolvedPath, Cause: readError}
	}

	decoder := yaml.NewDecoder(bytes.NewReader(manifestContent))
	decoder.KnownFields(true)

	var manifest Manifest
	if decodeError := decoder.Decode(&manifest); decodeError != nil {
		if errors.Is(decodeError, io.EOF) {
			return nil, ManifestError{Path: resolvedPath, Cause: errManifestEmpty}
		}
		return nil, ManifestError{Path: resolvedPath, Cause: decodeError}
	}
	if len(manifest.Moves) == 0 {
		return nil, ManifestError{Path: resolvedPath, Cause: errManifestEmpty}
	}

	arguments := make([]string, 0, len(manifest.Moves)*2)
	for entryIndex, entry := range manifest.Moves {
		source := strings.TrimSpace(entry.Source)
		destination := strings.TrimSpace(entry.Destination)
		if len(source) == 0 || len(destination) == 0 {
			return nil, ManifestError{Path: resolvedPath, Cause: fmt.Errorf(manifestEntryIncompleteTemplateConstant, entryIndex+1)}
		}
		arguments = append(arguments, source, destination)
	}

	return arguments, nil
}
