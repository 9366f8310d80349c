// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	// FileName is the manifest file name at the project root.
	FileName = "cedar.toml"

	// DefaultVersion is the version assigned to freshly scaffolded projects.
	DefaultVersion = "0.1.0"
	// DefaultCompiler is the compiler spelling written by Default.
	DefaultCompiler = "GCC"
)

// ErrInvalidManifest is the sentinel error wrapped by InvalidManifestError.
var ErrInvalidManifest = errors.New("invalid manifest")

type (
	// Manifest is the persisted project configuration.
	Manifest struct {
		Meta  Meta  `toml:"meta"`
		Build Build `toml:"build"`
	}

	// Meta describes the project itself.
	Meta struct {
		// Name is the project display name and the executable file name.
		Name string `toml:"name"`
		// Version is optional in the file. Parse fills DefaultVersion when
		// the key is absent; hand-built manifests may leave it empty.
		Version     string `toml:"version,omitempty"`
		Description string `toml:"description,omitempty"`
	}

	// Build holds the compiler selection and extra flags.
	Build struct {
		// Compiler is a recognized compiler spelling (see ResolveCompiler).
		Compiler string `toml:"compiler"`
		// Cflags are appended to the compiler command line in order.
		Cflags []string `toml:"cflags"`
	}

	// InvalidManifestError describes why a manifest was rejected. Field is
	// set when a specific key is missing, empty or malformed, with Reason
	// naming the malformation. Cause is set when the document could not be
	// decoded or encoded at all.
	InvalidManifestError struct {
		Field  string
		Reason string
		Cause  error
	}

	// document mirrors Manifest with pointer fields so that absent keys can
	// be told apart from empty values.
	document struct {
		Meta  *metaDocument  `toml:"meta"`
		Build *buildDocument `toml:"build"`
	}

	metaDocument struct {
		Name        *string `toml:"name"`
		Version     *string `toml:"version"`
		Description *string `toml:"description"`
	}

	buildDocument struct {
		Compiler *string   `toml:"compiler"`
		Cflags   *[]string `toml:"cflags"`
	}
)

// Default returns the manifest written by scaffolding. The caller must set
// Meta.Name before persisting it.
func Default() *Manifest {
	return &Manifest{
		Meta: Meta{
			Version: DefaultVersion,
		},
		Build: Build{
			Compiler: DefaultCompiler,
			Cflags:   []string{"-Wall", "-Wextra"},
		},
	}
}

// Parse decodes a manifest from TOML text. Either the whole document is
// accepted or an error wrapping ErrInvalidManifest is returned.
func Parse(data []byte) (*Manifest, error) {
	var doc document
	if err := toml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return nil, &InvalidManifestError{Cause: decodeCause(err)}
	}

	switch {
	case doc.Meta == nil:
		return nil, &InvalidManifestError{Field: "meta"}
	case doc.Meta.Name == nil:
		return nil, &InvalidManifestError{Field: "meta.name"}
	}
	if err := ValidateName(*doc.Meta.Name); err != nil {
		return nil, err
	}
	switch {
	case doc.Build == nil:
		return nil, &InvalidManifestError{Field: "build"}
	case doc.Build.Compiler == nil:
		return nil, &InvalidManifestError{Field: "build.compiler"}
	case doc.Build.Cflags == nil:
		return nil, &InvalidManifestError{Field: "build.cflags"}
	}

	m := &Manifest{
		Meta: Meta{
			Name:        *doc.Meta.Name,
			Version:     DefaultVersion,
			Description: deref(doc.Meta.Description),
		},
		Build: Build{
			Compiler: *doc.Build.Compiler,
			Cflags:   slices.Clone(*doc.Build.Cflags),
		},
	}
	if doc.Meta.Version != nil {
		m.Meta.Version = *doc.Meta.Version
	}
	if m.Build.Cflags == nil {
		m.Build.Cflags = []string{}
	}
	return m, nil
}

// Marshal encodes the manifest as canonical TOML text.
func (m *Manifest) Marshal() ([]byte, error) {
	out := *m
	// cflags is a required key, so an empty list is still written.
	if out.Build.Cflags == nil {
		out.Build.Cflags = []string{}
	}
	data, err := toml.Marshal(&out)
	if err != nil {
		return nil, &InvalidManifestError{Cause: err}
	}
	return data, nil
}

// Validate reports whether the manifest can drive a build: the name must be
// a usable file name and the compiler must be recognized.
func (m *Manifest) Validate() error {
	if err := ValidateName(m.Meta.Name); err != nil {
		return err
	}
	if _, err := ResolveCompiler(m.Build.Compiler); err != nil {
		return err
	}
	return nil
}

// ValidateName checks that name can serve as the executable file name inside
// the build directory. Blank names and names that are not a single path
// element are rejected.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return &InvalidManifestError{Field: "meta.name"}
	case name == "." || name == ".." || strings.ContainsAny(name, `/\`):
		return &InvalidManifestError{
			Field:  "meta.name",
			Reason: fmt.Sprintf("must be a plain file name, got %q", name),
		}
	}
	return nil
}

// VersionOrDefault returns Meta.Version, or DefaultVersion when unset.
func (m *Manifest) VersionOrDefault() string {
	if m.Meta.Version == "" {
		return DefaultVersion
	}
	return m.Meta.Version
}

// Error implements the error interface.
func (e *InvalidManifestError) Error() string {
	switch {
	case e.Field != "" && e.Reason != "":
		return fmt.Sprintf("invalid manifest: %s %s", e.Field, e.Reason)
	case e.Field != "":
		return fmt.Sprintf("invalid manifest: missing or empty %s", e.Field)
	case e.Cause != nil:
		return fmt.Sprintf("invalid manifest: %v", e.Cause)
	default:
		return ErrInvalidManifest.Error()
	}
}

// Unwrap returns ErrInvalidManifest for errors.Is() compatibility.
func (e *InvalidManifestError) Unwrap() error { return ErrInvalidManifest }

// decodeCause adds the line and column to go-toml decode errors, which
// otherwise only carry the message.
func decodeCause(err error) error {
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		row, col := derr.Position()
		return fmt.Errorf("line %d, column %d: %w", row, col, err)
	}
	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
