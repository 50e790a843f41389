// Package nativeplan rewrites container image build plans around a
// locally compiled native executable.
//
// A build plan is a declarative description of an image's filesystem
// layers, entrypoint, and metadata, produced by an image-building
// library before it is realized into an actual image. Plans are treated
// as immutable: every transformation returns a fresh plan and leaves
// its input untouched.
package nativeplan

import (
	"io/fs"
	"slices"
	"strings"
)

// FileEntry is a single file-copy instruction within a layer: a local
// source path, an absolute destination path inside the image, and the
// destination's permission bits.
type FileEntry struct {
	Source      string      `json:"source"`
	Destination string      `json:"destination"`
	Mode        fs.FileMode `json:"mode"`
}

// Layer is a named, ordered set of file-copy instructions representing
// one filesystem delta in the final image. Layer names are not required
// to be unique within a plan.
type Layer struct {
	Name    string      `json:"name"`
	Entries []FileEntry `json:"entries,omitempty"`
}

// Clone returns a deep copy of the layer.
func (l Layer) Clone() Layer {
	return Layer{
		Name:    l.Name,
		Entries: slices.Clone(l.Entries),
	}
}

// BuildPlan describes a container image as an ordered list of layers,
// an entrypoint, and free-form metadata. A nil or empty Entrypoint
// means the plan does not define one.
type BuildPlan struct {
	Layers     []Layer           `json:"layers,omitempty"`
	Entrypoint []string          `json:"entrypoint,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Clone returns a deep copy of the plan. The copy shares no mutable
// state with the original.
func (p BuildPlan) Clone() BuildPlan {
	out := BuildPlan{
		Entrypoint: slices.Clone(p.Entrypoint),
	}
	if p.Layers != nil {
		out.Layers = make([]Layer, 0, len(p.Layers))
		for _, l := range p.Layers {
			out.Layers = append(out.Layers, l.Clone())
		}
	}
	if p.Metadata != nil {
		out.Metadata = make(map[string]string, len(p.Metadata))
		for k, v := range p.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// HasEntrypoint reports whether the plan defines a non-empty entrypoint.
func (p BuildPlan) HasEntrypoint() bool {
	return len(p.Entrypoint) > 0
}

// LayersWithPrefix returns deep copies of the plan's layers whose name
// starts with prefix, preserving their relative order.
func (p BuildPlan) LayersWithPrefix(prefix string) []Layer {
	var out []Layer
	for _, l := range p.Layers {
		if strings.HasPrefix(l.Name, prefix) {
			out = append(out, l.Clone())
		}
	}
	return out
}
