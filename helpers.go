package nexusweb

import (
	"net/url"
	"path"
	"strings"

	"github.com/eringen/nexusweb/views"
)

// StaticPrefix is the URL prefix the static directory is served under.
const StaticPrefix = views.StaticPrefix

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join("/", u.Path, path.Join(pathSegments...))
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// SplitTags splits a comma-separated list, trimming blanks and dropping
// empty entries.
func SplitTags(s string) []string {
	out := []string{}
	for _, v := range strings.Split(s, ",") {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
