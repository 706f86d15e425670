package asset

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// A Resource wraps a local file or a file streamed over http(s). Scene
// descriptions and the textures they reference are both loaded through it so
// a scene hosted on a web server can pull its textures from the same place.
type Resource struct {
	io.ReadCloser
	url *url.URL
}

// Path returns the location of this resource.
func (r *Resource) Path() string {
	return r.url.String()
}

// Name returns the last path element of the resource location.
func (r *Resource) Name() string {
	return path.Base(r.url.Path)
}

// Ext returns the lower-cased file extension of the resource, including the
// leading dot.
func (r *Resource) Ext() string {
	return strings.ToLower(path.Ext(r.url.Path))
}

// IsRemote returns true if the resource is streamed over http/https.
func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// NewResource opens a resource. When relTo is set and pathToResource has no
// scheme, the location is resolved against the directory of relTo. The caller
// must close the returned resource.
func NewResource(pathToResource string, relTo *Resource) (*Resource, error) {
	loc, err := url.Parse(strings.Replace(pathToResource, `\`, `/`, -1))
	if err != nil {
		return nil, fmt.Errorf("resource: invalid location '%s': %w", pathToResource, err)
	}

	if loc.Scheme == "" && relTo != nil && !filepath.IsAbs(loc.Path) {
		loc, err = resolveRelative(loc.Path, relTo)
		if err != nil {
			return nil, err
		}
	}

	var reader io.ReadCloser
	switch loc.Scheme {
	case "":
		reader, err = os.Open(filepath.Clean(loc.Path))
		if err != nil {
			return nil, fmt.Errorf("resource: could not open '%s': %w", loc.Path, err)
		}
	case "http", "https":
		resp, err := http.Get(loc.String())
		if err != nil {
			return nil, fmt.Errorf("resource: could not fetch '%s': %w", loc.String(), err)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("resource: could not fetch '%s': status %d", loc.String(), resp.StatusCode)
		}
		reader = resp.Body
	default:
		return nil, fmt.Errorf("resource: unsupported scheme '%s'", loc.Scheme)
	}

	return &Resource{
		ReadCloser: reader,
		url:        loc,
	}, nil
}

func resolveRelative(relPath string, relTo *Resource) (*url.URL, error) {
	parent, _ := url.Parse(relTo.url.String())
	if parent.Scheme != "" {
		parent.Path = path.Join(path.Dir(parent.Path), relPath)
		return parent, nil
	}

	abs, err := filepath.Abs(relTo.url.Path)
	if err != nil {
		return nil, fmt.Errorf("resource: could not detect abs path for %s: %w", relTo.url.Path, err)
	}
	return &url.URL{Path: filepath.Join(filepath.Dir(abs), relPath)}, nil
}

// NewResourceFromStream wraps a reader into a resource with the given name.
func NewResourceFromStream(name string, source io.Reader) *Resource {
	loc, _ := url.Parse(name)
	return &Resource{
		ReadCloser: io.NopCloser(source),
		url:        loc,
	}
}
