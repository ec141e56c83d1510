package layout

// DefaultSizes splits totalSpace minus gutters into count parts. Every
// part except the last is the floor of the even share; the last takes the
// remainder, so the parts plus gutters always sum to totalSpace exactly.
// The persisted sum invariant depends on this exact rounding rule, so no
// largest-remainder redistribution is applied.
func DefaultSizes(count, totalSpace, gutter int) []int {
	if count <= 0 {
		return nil
	}
	available := totalSpace - (count-1)*gutter
	part := available / count
	sizes := make([]int, count)
	for i := 0; i < count-1; i++ {
		sizes[i] = part
	}
	sizes[count-1] = available - part*(count-1)
	return sizes
}

// MaxSize is the largest a single element can grow while every sibling
// stays at its minimum.
func MaxSize(count, minSize, gutter, totalSpace int) int {
	return totalSpace - (count-1)*(minSize+gutter)
}
