package ocibuild

import (
	"archive/tar"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// WriteDir writes the image as an OCI image layout directory at path.
// The directory will contain oci-layout, index.json, and all blobs
// under blobs/<algorithm>/<encoded>.
//
// The directory is created if it does not exist.
func (i *Image) WriteDir(_ context.Context, path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	layoutData, err := json.Marshal(ocispec.ImageLayout{Version: ocispec.ImageLayoutVersion})
	if err != nil {
		return fmt.Errorf("marshaling oci-layout: %w", err)
	}
	if err := os.WriteFile(filepath.Join(path, ocispec.ImageLayoutFile), layoutData, 0o644); err != nil {
		return fmt.Errorf("writing oci-layout: %w", err)
	}

	for _, dgst := range i.sortedDigests() {
		algoDir := filepath.Join(path, "blobs", dgst.Algorithm().String())
		if err := os.MkdirAll(algoDir, 0o755); err != nil {
			return fmt.Errorf("creating blob directory: %w", err)
		}
		if err := os.WriteFile(filepath.Join(algoDir, dgst.Encoded()), i.blobs[dgst], 0o644); err != nil {
			return fmt.Errorf("writing blob %s: %w", dgst, err)
		}
	}

	// Write index.json last, once all blobs it references exist.
	idxData, err := json.Marshal(i.index)
	if err != nil {
		return fmt.Errorf("marshaling index.json: %w", err)
	}
	if err := os.WriteFile(filepath.Join(path, "index.json"), idxData, 0o644); err != nil {
		return fmt.Errorf("writing index.json: %w", err)
	}

	return nil
}

// WriteTar writes the image as a tar archive in OCI image layout
// format. Blobs are written in digest order, so the archive is
// deterministic for a given image.
func (i *Image) WriteTar(_ context.Context, w io.Writer) error {
	tw := tar.NewWriter(w)
	defer tw.Close()

	layoutData, err := json.Marshal(ocispec.ImageLayout{Version: ocispec.ImageLayoutVersion})
	if err != nil {
		return fmt.Errorf("marshaling oci-layout: %w", err)
	}
	if err := writeTarEntry(tw, ocispec.ImageLayoutFile, layoutData); err != nil {
		return fmt.Errorf("writing oci-layout: %w", err)
	}

	for _, dgst := range i.sortedDigests() {
		name := fmt.Sprintf("blobs/%s/%s", dgst.Algorithm(), dgst.Encoded())
		if err := writeTarEntry(tw, name, i.blobs[dgst]); err != nil {
			return fmt.Errorf("writing blob %s: %w", dgst, err)
		}
	}

	idxData, err := json.Marshal(i.index)
	if err != nil {
		return fmt.Errorf("marshaling index.json: %w", err)
	}
	if err := writeTarEntry(tw, "index.json", idxData); err != nil {
		return fmt.Errorf("writing index.json: %w", err)
	}

	return nil
}

// sortedDigests returns the image's blob digests in lexical order.
func (i *Image) sortedDigests() []digest.Digest {
	dgsts := make([]digest.Digest, 0, len(i.blobs))
	for dgst := range i.blobs {
		dgsts = append(dgsts, dgst)
	}
	slices.Sort(dgsts)
	return dgsts
}

// writeTarEntry writes data as a regular-file tar entry.
func writeTarEntry(tw *tar.Writer, name string, data []byte) error {
	hdr := &tar.Header{
		Name: name,
		Mode: 0o444,
		Size: int64(len(data)),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err := tw.Write(data)
	return err
}
