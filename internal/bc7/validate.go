package bc7

import (
	"fmt"

	"github.com/woozymasta/ktxbake/internal/texture"
)

// Validate enforces the BC7 collaborator's parameter ranges (spec §4.E):
// uber_level<=4, max_partitions_to_scan<=64, max_threads>=1, and (when RDO
// is enabled) lambda in [0,500], lookback_window>=8,
// smooth_block_error_scale in [1,500], max_smooth_block_std_dev in
// [0.000125,256].
func Validate(opts Options) error {
	if opts.UberLevel < 0 || opts.UberLevel > 4 {
		return fmt.Errorf("%w: uber_level must be 0..4, got %d", texture.ErrInvalidOption, opts.UberLevel)
	}
	if opts.MaxPartitionsToScan < 0 || opts.MaxPartitionsToScan > 64 {
		return fmt.Errorf("%w: max_partitions_to_scan must be 0..64, got %d", texture.ErrInvalidOption, opts.MaxPartitionsToScan)
	}
	if opts.MaxThreads < 1 {
		return fmt.Errorf("%w: max_threads must be >= 1, got %d", texture.ErrInvalidOption, opts.MaxThreads)
	}
	if opts.RDO == nil {
		return nil
	}
	r := opts.RDO
	if r.Lambda < 0 || r.Lambda > 500 {
		return fmt.Errorf("%w: rdo lambda must be 0..500, got %v", texture.ErrInvalidOption, r.Lambda)
	}
	if r.LookbackWindow < 8 {
		return fmt.Errorf("%w: rdo lookback_window must be >= 8, got %d", texture.ErrInvalidOption, r.LookbackWindow)
	}
	if r.SmoothBlockErrorScale < 1 || r.SmoothBlockErrorScale > 500 {
		return fmt.Errorf("%w: rdo smooth_block_error_scale must be 1..500, got %v", texture.ErrInvalidOption, r.SmoothBlockErrorScale)
	}
	if r.MaxSmoothBlockStdDev < 0.000125 || r.MaxSmoothBlockStdDev > 256 {
		return fmt.Errorf("%w: rdo max_smooth_block_std_dev must be 0.000125..256, got %v", texture.ErrInvalidOption, r.MaxSmoothBlockStdDev)
	}
	return nil
}
