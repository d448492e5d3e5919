package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/woozymasta/ktxbake/internal/bc7"
	"github.com/woozymasta/ktxbake/internal/cache"
	"github.com/woozymasta/ktxbake/internal/ktx2"
	"github.com/woozymasta/ktxbake/internal/legacyedds"
	"github.com/woozymasta/ktxbake/internal/pipeline"
	"github.com/woozymasta/ktxbake/internal/texture"
)

// runBake loads input, runs the full bake pipeline targeting target, and
// writes output as a KTX2 file (plus an optional legacy EDDS sidecar).
func runBake(input, output string, common CommonFlags, target texture.Encoding, bc7Opts bc7.Options) error {
	if !common.Force {
		if _, err := os.Stat(output); err == nil {
			return fmt.Errorf("output file %q already exists (use --force)", output)
		}
	}

	digestPath := output + ".ktxbake-digest"
	optionDigest := fmt.Sprintf("%s|%+v|%+v", target, common, bc7Opts)
	if common.SkipUnchanged {
		nextDigest, err := cache.Digest(input, optionDigest)
		if err != nil {
			return err
		}
		if cache.ShouldSkip(digestPath, output, nextDigest) {
			fmt.Printf("Inputs unchanged; skipping write for %s\n", output)
			return nil
		}
	}

	encodedBytes, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %q: %w", input, err)
	}

	popts, err := common.toPipelineOptions()
	if err != nil {
		return err
	}
	popts.Target = target
	popts.BC7 = bc7Opts

	tex, err := pipeline.Bake(encodedBytes, popts)
	if err != nil {
		return fmt.Errorf("bake %q: %w", input, err)
	}
	defer tex.Release()

	if err := os.MkdirAll(filepath.Dir(output), 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %q: %w", output, err)
	}
	defer func() { _ = f.Close() }()

	if err := ktx2.Write(f, tex); err != nil {
		return fmt.Errorf("write %q: %w", output, err)
	}

	if common.LegacyEDDS {
		if err := writeLegacyEDDS(tex, output, common.LegacyEDDSMipmaps); err != nil {
			return fmt.Errorf("legacy edds: %w", err)
		}
	}

	if common.SkipUnchanged {
		nextDigest, err := cache.Digest(input, optionDigest)
		if err == nil {
			_ = cache.Write(digestPath, nextDigest)
		}
	}

	fmt.Printf("Baked %s -> %s (%d levels, %s)\n", input, output, len(tex.Levels), target)
	return nil
}

func writeLegacyEDDS(tex *texture.Texture, output string, maxMipMaps int) error {
	base := tex.Levels[0]
	if base.Encoding != texture.EncodingRGBAU8 && base.Encoding != texture.EncodingRGBASRGBU8 {
		return fmt.Errorf("%w: legacy-edds requires an rgba-u8 or rgba-srgb-u8 target, got %s", texture.ErrInvalidOption, base.Encoding)
	}
	base.Encoding = texture.EncodingRGBAU8 // byte layout is identical; only the transfer-function label differs.
	path := output[:len(output)-len(filepath.Ext(output))] + ".edds"
	return legacyedds.Write(path, base, maxMipMaps)
}
