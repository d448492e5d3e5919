// Package cache implements the supplemented --skip-unchanged feature
// (spec §7): an xxhash64 digest of a job's input file plus its full option
// set, compared against a sidecar written next to the output, so unchanged
// bakes can skip re-encoding entirely. Grounded on the teacher's
// internal/cli/pack_cache.go (computeInputsHash/readCacheHash/writeCacheHash),
// generalized from "hash of a directory of sprite files" to "hash of one
// source file plus its bake options".
package cache

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// Digest computes the combined hash of an input file's bytes and its
// serialized option set (opts is any caller-provided string already
// canonicalized, typically a JSON or flag-string encoding of the job).
func Digest(inputPath string, opts string) (uint64, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return 0, fmt.Errorf("cache: open %q: %w", inputPath, err)
	}
	defer func() { _ = f.Close() }()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, fmt.Errorf("cache: hash %q: %w", inputPath, err)
	}
	if _, err := h.Write([]byte{0}); err != nil {
		return 0, err
	}
	if _, err := h.WriteString(opts); err != nil {
		return 0, fmt.Errorf("cache: hash options: %w", err)
	}

	return h.Sum64(), nil
}

// ShouldSkip reports whether outputPath already reflects nextDigest: the
// sidecar digest file next to it matches, and outputPath itself still
// exists.
func ShouldSkip(sidecarPath, outputPath string, nextDigest uint64) bool {
	prev, ok, err := Read(sidecarPath)
	if err != nil || !ok || prev != nextDigest {
		return false
	}
	if _, err := os.Stat(outputPath); err != nil {
		return false
	}
	return true
}

// Read loads a previously written digest sidecar, if any.
func Read(path string) (uint64, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("cache: read %q: %w", path, err)
	}
	if len(data) != 8 {
		return 0, false, nil
	}
	return binary.LittleEndian.Uint64(data), true, nil
}

// Write persists digest to a sidecar file next to the bake output.
func Write(path string, digest uint64) error {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, digest)
	if err := os.WriteFile(path, buf, 0o600); err != nil {
		return fmt.Errorf("cache: write %q: %w", path, err)
	}
	return nil
}
