package bc7

import "testing"

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "ok-defaults", opts: Options{UberLevel: 1, MaxPartitionsToScan: 64, MaxThreads: 1}, wantErr: false},
		{name: "uber-too-high", opts: Options{UberLevel: 5, MaxThreads: 1}, wantErr: true},
		{name: "partitions-too-high", opts: Options{MaxPartitionsToScan: 65, MaxThreads: 1}, wantErr: true},
		{name: "zero-threads", opts: Options{MaxThreads: 0}, wantErr: true},
		{
			name: "rdo-ok",
			opts: Options{MaxThreads: 1, RDO: &RDOOptions{
				Lambda: 10, LookbackWindow: 8, SmoothBlockErrorScale: 1, MaxSmoothBlockStdDev: 18,
			}},
			wantErr: false,
		},
		{
			name:    "rdo-lambda-too-high",
			opts:    Options{MaxThreads: 1, RDO: &RDOOptions{Lambda: 501, LookbackWindow: 8, SmoothBlockErrorScale: 1, MaxSmoothBlockStdDev: 1}},
			wantErr: true,
		},
		{
			name:    "rdo-lookback-too-low",
			opts:    Options{MaxThreads: 1, RDO: &RDOOptions{Lambda: 0, LookbackWindow: 7, SmoothBlockErrorScale: 1, MaxSmoothBlockStdDev: 1}},
			wantErr: true,
		},
		{
			name:    "rdo-stddev-too-low",
			opts:    Options{MaxThreads: 1, RDO: &RDOOptions{Lambda: 0, LookbackWindow: 8, SmoothBlockErrorScale: 1, MaxSmoothBlockStdDev: 0.00001}},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(tc.opts)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate(%+v) error = %v, wantErr %v", tc.opts, err, tc.wantErr)
			}
		})
	}
}

func TestDefaultMaxThreads(t *testing.T) {
	t.Parallel()

	if n := DefaultMaxThreads(); n < 1 {
		t.Fatalf("DefaultMaxThreads() = %d, want >= 1", n)
	}
}
