package data

// BatchRanges cuts n examples into contiguous [start, end) mini-batches
// of batchSize, the final batch possibly smaller.
func BatchRanges(n, batchSize int) [][2]int {
	if batchSize <= 0 || batchSize > n {
		batchSize = n
	}
	ranges := make([][2]int, 0, (n+batchSize-1)/batchSize)
	for start := 0; start < n; start += batchSize {
		end := start + batchSize
		if end > n {
			end = n
		}
		ranges = append(ranges, [2]int{start, end})
	}
	return ranges
}
