package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
)

const (
	// FileName is the manifest file name expected in every package directory.
	FileName = "package.json"

	nameFieldConstant           = "name"
	privateFieldConstant        = "private"
	workspacesFieldConstant     = "workspaces"
	packageManagerFieldConstant = "packageManager"
)

var (
	errTopLevelNotObject = errors.New("top-level value is not an object")
	errTrailingContent   = errors.New("unexpected content after document")
)

// Manifest is one parsed package manifest together with the formatting
// metadata required for lossless rewriting. The document is mutated only by
// the resolution engine; every mutator marks the manifest dirty.
type Manifest struct {
	Path       string
	Document   *Document
	Indent     string
	LineEnding string

	dirty bool
}

// Parse decodes manifest bytes into an ordered document and captures the
// detected indentation unit and newline convention.
func Parse(path string, data []byte) (*Manifest, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	openingToken, openingError := decoder.Token()
	if openingError != nil {
		return nil, MalformedManifestError{Path: path, Offset: decoder.InputOffset(), Err: openingError}
	}
	openingDelimiter, isDelimiter := openingToken.(json.Delim)
	if !isDelimiter || openingDelimiter != '{' {
		return nil, MalformedManifestError{Path: path, Offset: decoder.InputOffset(), Err: errTopLevelNotObject}
	}

	document, parseError := parseDocument(decoder)
	if parseError != nil {
		return nil, MalformedManifestError{Path: path, Offset: decoder.InputOffset(), Err: parseError}
	}

	if _, trailingError := decoder.Token(); !errors.Is(trailingError, io.EOF) {
		return nil, MalformedManifestError{Path: path, Offset: decoder.InputOffset(), Err: errTrailingContent}
	}

	return &Manifest{
		Path:       path,
		Document:   document,
		Indent:     DetectIndent(data),
		LineEnding: DetectLineEnding(data),
	}, nil
}

// Load reads and parses the manifest at the provided path.
func Load(path string) (*Manifest, error) {
	data, readError := os.ReadFile(path)
	if readError != nil {
		return nil, readError
	}
	return Parse(path, data)
}

// Serialize renders the document using the manifest's captured indentation and
// newline convention, ending with a trailing newline.
func (currentManifest *Manifest) Serialize() ([]byte, error) {
	writer := documentWriter{indentUnit: currentManifest.Indent, lineEnding: currentManifest.LineEnding}
	if writeError := writer.writeDocument(currentManifest.Document, 0); writeError != nil {
		return nil, writeError
	}
	writer.buffer.WriteString(currentManifest.LineEnding)
	return writer.buffer.Bytes(), nil
}

// Dirty reports whether the resolution engine mutated this manifest.
func (currentManifest *Manifest) Dirty() bool {
	return currentManifest.dirty
}

// Name returns the manifest's declared package name, empty when absent.
func (currentManifest *Manifest) Name() string {
	name, _ := currentManifest.Document.GetString(nameFieldConstant)
	return name
}

// IsPrivate reports whether the manifest's private flag is set to true.
func (currentManifest *Manifest) IsPrivate() bool {
	privateValue, exists := currentManifest.Document.GetBool(privateFieldConstant)
	return exists && privateValue
}

// PackageManagerValue returns the packageManager field when declared.
func (currentManifest *Manifest) PackageManagerValue() (string, bool) {
	return currentManifest.Document.GetString(packageManagerFieldConstant)
}

// WorkspaceGlobs returns the workspaces glob list when declared on the root
// manifest.
func (currentManifest *Manifest) WorkspaceGlobs() ([]string, bool) {
	return currentManifest.Document.GetStringSlice(workspacesFieldConstant)
}

// DependencyBlock returns the ordered block for the requested dependency kind.
func (currentManifest *Manifest) DependencyBlock(kind DependencyKind) (*Document, bool) {
	return currentManifest.Document.GetDocument(string(kind))
}

// ConfigBlock returns the embedded configuration object stored under the
// provided reserved key, converted to plain maps for generic decoding.
func (currentManifest *Manifest) ConfigBlock(reservedKey string) (map[string]any, bool) {
	configDocument, exists := currentManifest.Document.GetDocument(reservedKey)
	if !exists {
		return nil, false
	}
	plainValue, isMap := Plain(configDocument).(map[string]any)
	return plainValue, isMap
}

// SetDependencyVersion overwrites the constraint declared for a dependency and
// reports whether the block contained it.
func (currentManifest *Manifest) SetDependencyVersion(kind DependencyKind, dependencyName string, version string) bool {
	block, exists := currentManifest.DependencyBlock(kind)
	if !exists {
		return false
	}
	if _, declared := block.Get(dependencyName); !declared {
		return false
	}
	block.Set(dependencyName, version)
	currentManifest.dirty = true
	return true
}

// SortDependencyBlock reorders a dependency block into ascending lexical order.
func (currentManifest *Manifest) SortDependencyBlock(kind DependencyKind) {
	block, exists := currentManifest.DependencyBlock(kind)
	if !exists {
		return
	}
	block.SortByName()
	currentManifest.dirty = true
}

// RemoveDependencyBlock deletes a dependency block field entirely.
func (currentManifest *Manifest) RemoveDependencyBlock(kind DependencyKind) bool {
	removed := currentManifest.Document.Remove(string(kind))
	if removed {
		currentManifest.dirty = true
	}
	return removed
}

// MoveDependency relocates a dependency between blocks, creating the target
// block when missing. The moved entry keeps its declared version.
func (currentManifest *Manifest) MoveDependency(fromKind DependencyKind, toKind DependencyKind, dependencyName string) bool {
	sourceBlock, sourceExists := currentManifest.DependencyBlock(fromKind)
	if !sourceExists {
		return false
	}
	version, declared := sourceBlock.GetString(dependencyName)
	if !declared {
		return false
	}

	targetBlock, targetExists := currentManifest.DependencyBlock(toKind)
	if !targetExists {
		targetBlock = NewDocument()
		currentManifest.Document.Set(string(toKind), targetBlock)
	}

	sourceBlock.Remove(dependencyName)
	targetBlock.Set(dependencyName, version)
	targetBlock.SortByName()
	currentManifest.dirty = true
	return true
}

// SetPrivate sets the manifest's private flag.
func (currentManifest *Manifest) SetPrivate(value bool) {
	currentManifest.Document.Set(privateFieldConstant, value)
	currentManifest.dirty = true
}

// SetPackageManager sets the packageManager declaration.
func (currentManifest *Manifest) SetPackageManager(value string) {
	currentManifest.Document.Set(packageManagerFieldConstant, value)
	currentManifest.dirty = true
}
