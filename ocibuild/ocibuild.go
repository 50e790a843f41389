// Package ocibuild realizes build plans into OCI images.
//
// A realized image holds its blobs in memory and implements containerd's
// content.Provider, so it can be fed directly to push infrastructure or
// written out as an OCI image layout.
package ocibuild

import (
	"archive/tar"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/containerd/containerd/v2/core/content"
	"github.com/containerd/errdefs"
	"github.com/containerd/platforms"
	"github.com/klauspost/compress/gzip"
	"github.com/opencontainers/go-digest"
	imgspecs "github.com/opencontainers/image-spec/specs-go"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"golang.org/x/sync/errgroup"

	"github.com/cpuguy83/nativeplan"
)

// Image is a realized build plan: a single-manifest OCI index plus all
// blobs it references, held in memory.
type Image struct {
	index *ocispec.Index
	blobs map[digest.Digest][]byte
}

type options struct {
	platform ocispec.Platform
}

// Option configures Realize.
type Option func(*options)

// WithPlatform sets the platform recorded in the image config and the
// manifest descriptor. The default is the local platform.
func WithPlatform(p ocispec.Platform) Option {
	return func(o *options) { o.platform = p }
}

// Realize turns a build plan into an OCI image. Each layer's file
// entries are archived into a gzip-compressed tar, the plan's
// entrypoint becomes the image config's entrypoint, and the plan's
// metadata becomes image labels.
//
// Layers are archived concurrently but appear in the image in plan
// order. Layer tars use zeroed modification times, so realizing the
// same plan twice yields byte-identical blobs.
func Realize(ctx context.Context, plan nativeplan.BuildPlan, opts ...Option) (*Image, error) {
	o := options{platform: platforms.DefaultSpec()}
	for _, opt := range opts {
		opt(&o)
	}

	type layerBlob struct {
		data   []byte
		diffID digest.Digest
	}
	archived := make([]layerBlob, len(plan.Layers))

	eg, ctx := errgroup.WithContext(ctx)
	for i, layer := range plan.Layers {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, diffID, err := archiveLayer(layer)
			if err != nil {
				return fmt.Errorf("archiving layer %q: %w", layer.Name, err)
			}
			archived[i] = layerBlob{data: data, diffID: diffID}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	img := &Image{blobs: make(map[digest.Digest][]byte)}

	var layerDescs []ocispec.Descriptor
	var diffIDs []digest.Digest
	for i, blob := range archived {
		desc := img.addBlob(ocispec.MediaTypeImageLayerGzip, blob.data)
		desc.Annotations = map[string]string{
			ocispec.AnnotationTitle: plan.Layers[i].Name,
		}
		layerDescs = append(layerDescs, desc)
		diffIDs = append(diffIDs, blob.diffID)
	}

	cfg := ocispec.Image{
		Platform: ocispec.Platform{
			Architecture: o.platform.Architecture,
			OS:           o.platform.OS,
			Variant:      o.platform.Variant,
		},
		Config: ocispec.ImageConfig{
			Entrypoint: plan.Entrypoint,
			Labels:     plan.Metadata,
		},
		RootFS: ocispec.RootFS{
			Type:    "layers",
			DiffIDs: diffIDs,
		},
	}
	cfgData, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling image config: %w", err)
	}
	cfgDesc := img.addBlob(ocispec.MediaTypeImageConfig, cfgData)

	manifest := ocispec.Manifest{
		Versioned: imgspecs.Versioned{SchemaVersion: 2},
		MediaType: ocispec.MediaTypeImageManifest,
		Config:    cfgDesc,
		Layers:    layerDescs,
	}
	manifestData, err := json.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("marshaling manifest: %w", err)
	}
	manifestDesc := img.addBlob(ocispec.MediaTypeImageManifest, manifestData)
	manifestDesc.Platform = &ocispec.Platform{
		Architecture: o.platform.Architecture,
		OS:           o.platform.OS,
		Variant:      o.platform.Variant,
	}

	img.index = &ocispec.Index{
		Versioned: imgspecs.Versioned{SchemaVersion: 2},
		MediaType: ocispec.MediaTypeImageIndex,
		Manifests: []ocispec.Descriptor{manifestDesc},
	}

	return img, nil
}

// addBlob stores data and returns its descriptor.
func (i *Image) addBlob(mediaType string, data []byte) ocispec.Descriptor {
	dgst := digest.FromBytes(data)
	i.blobs[dgst] = data
	return ocispec.Descriptor{
		MediaType: mediaType,
		Digest:    dgst,
		Size:      int64(len(data)),
	}
}

// Index returns the image's OCI index.
func (i *Image) Index(_ context.Context) (*ocispec.Index, error) {
	return i.index, nil
}

// ReaderAt returns a content.ReaderAt for the blob identified by the
// descriptor's digest.
func (i *Image) ReaderAt(_ context.Context, desc ocispec.Descriptor) (content.ReaderAt, error) {
	data, ok := i.blobs[desc.Digest]
	if !ok {
		return nil, fmt.Errorf("blob %s: %w", desc.Digest, errdefs.ErrNotFound)
	}
	return newBytesReaderAt(data), nil
}

// archiveLayer tars the layer's file entries and gzip-compresses the
// result. It returns the compressed bytes and the digest of the
// uncompressed tar (the layer's diff ID).
func archiveLayer(layer nativeplan.Layer) ([]byte, digest.Digest, error) {
	var tarBuf bytes.Buffer
	tw := tar.NewWriter(&tarBuf)

	for _, entry := range layer.Entries {
		data, err := os.ReadFile(entry.Source)
		if err != nil {
			return nil, "", fmt.Errorf("reading %s: %w", entry.Source, err)
		}

		hdr := &tar.Header{
			Name: strings.TrimPrefix(entry.Destination, "/"),
			Mode: int64(entry.Mode.Perm()),
			Size: int64(len(data)),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return nil, "", fmt.Errorf("writing header for %s: %w", entry.Destination, err)
		}
		if _, err := tw.Write(data); err != nil {
			return nil, "", fmt.Errorf("writing %s: %w", entry.Destination, err)
		}
	}
	if err := tw.Close(); err != nil {
		return nil, "", fmt.Errorf("closing layer tar: %w", err)
	}

	diffID := digest.FromBytes(tarBuf.Bytes())

	var gzBuf bytes.Buffer
	gz := gzip.NewWriter(&gzBuf)
	if _, err := gz.Write(tarBuf.Bytes()); err != nil {
		return nil, "", fmt.Errorf("compressing layer: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, "", fmt.Errorf("compressing layer: %w", err)
	}

	return gzBuf.Bytes(), diffID, nil
}

// bytesReaderAt implements content.ReaderAt over an in-memory byte slice.
type bytesReaderAt struct {
	*io.SectionReader
}

func newBytesReaderAt(b []byte) *bytesReaderAt {
	r := bytes.NewReader(b)
	return &bytesReaderAt{
		SectionReader: io.NewSectionReader(r, 0, int64(len(b))),
	}
}

func (b *bytesReaderAt) Close() error { return nil }
