package artifact

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/lanpobre/rghstore/internal/exception"
)

// Kind represents where on the console an artifact belongs
type Kind string

const (
	KindApp    Kind = "app"
	KindPlugin Kind = "plugin"
)

const (
	AppsNamespace    = "/Hdd1/Apps"
	PluginsNamespace = "/Hdd1/Plugins"
)

// ParseKind maps "plugin" (any case) to KindPlugin and anything else to
// KindApp
func ParseKind(s string) Kind {
	if strings.EqualFold(strings.TrimSpace(s), string(KindPlugin)) {
		return KindPlugin
	}

	return KindApp
}

// Descriptor describes a deployable package
type Descriptor struct {
	Name        string
	Title       string
	DownloadURL string
	Kind        Kind
	CoverURL    string
}

// Validate rejects names that cannot be used as a single path component
func (d Descriptor) Validate() error {
	return ValidateName(d.Name)
}

// ValidateName rejects empty names, "." and "..", and names containing a
// path separator
func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return exception.New(exception.ErrInvalidName, nil, "invalid name %q", name)
	case strings.ContainsAny(name, `/\`):
		return exception.New(exception.ErrInvalidName, nil, "name %q contains a path separator", name)
	}

	return nil
}

// NamespaceFor returns the remote directory artifacts of kind live in
func NamespaceFor(kind Kind) string {
	if kind == KindPlugin {
		return PluginsNamespace
	}

	return AppsNamespace
}

// RemotePath returns the remote directory the descriptor installs into
func RemotePath(d Descriptor) string {
	return path.Join(NamespaceFor(d.Kind), d.Name)
}

// Ext returns the lower-cased file extension of the url path, ignoring any
// query string or fragment
func Ext(rawURL string) string {
	p := rawURL

	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}

	return strings.ToLower(filepath.Ext(p))
}
