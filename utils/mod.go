package utils

// FindIndex returns the position of the first element equal to item, or -1.
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

func Contains[T comparable](slice []T, item T) bool {
	return FindIndex(slice, item) != -1
}

// Clamp limits v to the closed range [lo, hi].
func Clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
