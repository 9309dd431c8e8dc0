package utils

// MissingIndices indices in [1, total] absent from have
func MissingIndices(total int, have []int) []int {
	seen := make(map[int]bool, len(have))
	for _, v := range have {
		seen[v] = true
	}
	var missing []int
	for i := 1; i <= total; i++ {
		if !seen[i] {
			missing = append(missing, i)
		}
	}
	return missing
}
