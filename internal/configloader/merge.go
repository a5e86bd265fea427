package configloader

import "github.com/yaklabco/golmm/pkg/config"

// merge overlays non-zero fields of overlay onto base and returns the result.
// Neither input is modified.
func merge(base, overlay *config.Config) *config.Config {
	if base == nil {
		return overlay.Clone()
	}
	if overlay == nil {
		return base.Clone()
	}

	out := base.Clone()

	if overlay.SpaceWidth != 0 {
		out.SpaceWidth = overlay.SpaceWidth
	}
	if overlay.TabWidth != 0 {
		out.TabWidth = overlay.TabWidth
	}
	if overlay.Ignore != nil {
		out.Ignore = make([]string, len(overlay.Ignore))
		copy(out.Ignore, overlay.Ignore)
	}
	if overlay.Format != "" {
		out.Format = overlay.Format
	}
	if overlay.Strict {
		out.Strict = true
	}
	if overlay.Jobs != 0 {
		out.Jobs = overlay.Jobs
	}
	if overlay.DetectLang {
		out.DetectLang = true
	}

	return out
}
