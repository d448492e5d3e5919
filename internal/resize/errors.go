package resize

import "fmt"

func errInvalidFilter(s string) error {
	return fmt.Errorf("unknown filter %q (supported: triangle, cubic-b-spline, catmull-rom, mitchell, point-sample)", s)
}
