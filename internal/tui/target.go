package tui

import "net/url"

// ResolveTarget joins a relative launch target onto base. Absolute targets,
// an empty base and unparsable input are returned unchanged.
func ResolveTarget(base, target string) string {
	if base == "" {
		return target
	}
	t, err := url.Parse(target)
	if err != nil || t.IsAbs() {
		return target
	}
	b, err := url.Parse(base)
	if err != nil || !b.IsAbs() {
		return target
	}
	u := b.JoinPath(t.Path)
	u.RawQuery = t.RawQuery
	u.Fragment = t.Fragment
	return u.String()
}
