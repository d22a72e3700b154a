package provisioning

// Size computes the devices needed for totalLines lines, filling the
// largest density first.
//
// A group of five to seven lines gets a single under-filled HT818 rather
// than an HT814 plus an HT812. Lines left after the HT818s go to HT814s,
// and any remainder is rounded up to HT812s. Negative input is treated as
// zero.
func Size(totalLines int) DeviceCounts {
	n := max(totalLines, 0)

	eight := n / HT818.Capacity()
	if n > HT814.Capacity() && n < HT818.Capacity() {
		eight = max(eight, 1)
	}

	rem8 := max(n-eight*HT818.Capacity(), 0)
	four := rem8 / HT814.Capacity()

	rem4 := rem8 - four*HT814.Capacity()
	two := (rem4 + HT812.Capacity() - 1) / HT812.Capacity()

	return DeviceCounts{EightPort: eight, FourPort: four, TwoPort: two}
}
