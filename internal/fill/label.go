package fill

// Label assigns 4-connected component labels to the set pixels of mask, a
// w*h row-major grid. Unset pixels get label 0; components are numbered
// from 1 in row-major order of their first pixel. The second return value
// is the number of components.
func Label(mask []bool, w, h int) ([]int32, int) {
	labels := make([]int32, w*h)
	parent := []int32{0}

	find := func(l int32) int32 {
		for parent[l] != l {
			parent[l] = parent[parent[l]]
			l = parent[l]
		}
		return l
	}
	union := func(a, b int32) {
		ra, rb := find(a), find(b)
		switch {
		case ra < rb:
			parent[rb] = ra
		case rb < ra:
			parent[ra] = rb
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if !mask[i] {
				continue
			}
			var left, up int32
			if x > 0 {
				left = labels[i-1]
			}
			if y > 0 {
				up = labels[i-w]
			}
			switch {
			case left == 0 && up == 0:
				next := int32(len(parent))
				parent = append(parent, next)
				labels[i] = next
			case left != 0 && up != 0:
				labels[i] = min(left, up)
				if left != up {
					union(left, up)
				}
			case left != 0:
				labels[i] = left
			default:
				labels[i] = up
			}
		}
	}

	remap := make([]int32, len(parent))
	count := int32(0)
	for i, l := range labels {
		if l == 0 {
			continue
		}
		r := find(l)
		if remap[r] == 0 {
			count++
			remap[r] = count
		}
		labels[i] = remap[r]
	}
	return labels, int(count)
}
