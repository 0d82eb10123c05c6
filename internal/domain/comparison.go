package domain

// ComparisonResult partitions the symmetric difference of a GSN reference
// set and a directory result set. Names in both sets appear in neither field.
type ComparisonResult struct {
	missingInAD  []string
	missingInGSN []string
}

// Compare classifies every GSN entry absent from the directory result as
// missing in AD, and every directory entry absent from the reference list as
// missing in GSN. Both sides are returned sorted so repeated runs over the
// same inputs serialize to identical bytes.
func Compare(gsn, ad NameSet) ComparisonResult {
	r := ComparisonResult{
		missingInAD:  make([]string, 0),
		missingInGSN: make([]string, 0),
	}
	for _, n := range gsn.Sorted() {
		if !ad.Contains(n) {
			r.missingInAD = append(r.missingInAD, n)
		}
	}
	for _, n := range ad.Sorted() {
		if !gsn.Contains(n) {
			r.missingInGSN = append(r.missingInGSN, n)
		}
	}
	return r
}

// MissingInAD returns the GSN entries absent from the directory result, sorted.
func (r ComparisonResult) MissingInAD() []string {
	out := make([]string, len(r.missingInAD))
	copy(out, r.missingInAD)
	return out
}

// MissingInGSN returns the directory entries absent from the reference list, sorted.
func (r ComparisonResult) MissingInGSN() []string {
	out := make([]string, len(r.missingInGSN))
	copy(out, r.missingInGSN)
	return out
}
