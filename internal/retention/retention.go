// Package retention decides whether a freshly encoded delta is worth
// keeping, or whether the snapshot should be stored as a new full base.
package retention

// SmallFileThresholdBytes separates the two size regimes. Below it, a
// delta's fixed per-hunk overhead can trivially exceed a strict ratio, so
// a much looser bound applies.
const SmallFileThresholdBytes = 2048

// Threshold ratios of delta size to base size above which the snapshot is
// promoted to a new base.
const (
	SmallFileRatio = 0.95
	LargeFileRatio = 0.30
)

// ShouldPromote reports whether a delta of deltaSize bytes against a base
// of baseSize bytes is too large to keep, in which case the caller stores
// the new snapshot as a full base and prunes older bases.
func ShouldPromote(baseSize, deltaSize int) bool {
	ratio := LargeFileRatio
	if baseSize < SmallFileThresholdBytes {
		ratio = SmallFileRatio
	}
	return float64(deltaSize) > float64(baseSize)*ratio
}
