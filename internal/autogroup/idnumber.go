package autogroup

import (
	"strconv"
	"strings"
)

const (
	// idNumberTag marks a group as managed by the reconciler.
	idNumberTag = "autogroup"
	// idNumberDelimiter joins the idnumber parts.
	idNumberDelimiter = "|"
)

// IDNumber derives the canonical idnumber for a group generated by a
// grouping set: "autogroup|<setID>|<key>". The result depends on
// nothing but its inputs, so it can be recomputed at any time.
func IDNumber(setID uint64, key string) string {
	return strings.Join(
		[]string{idNumberTag, strconv.FormatUint(setID, 10), key},
		idNumberDelimiter,
	)
}

// IDNumberPrefix returns the idnumber prefix shared by all groups of a
// grouping set, used for owned-group discovery.
func IDNumberPrefix(setID uint64) string {
	return idNumberTag + idNumberDelimiter + strconv.FormatUint(setID, 10) + idNumberDelimiter
}

// IsManaged reports whether an idnumber marks a managed group. A group
// whose idnumber was cleared is permanently unmanaged.
func IsManaged(idnumber string) bool {
	return strings.HasPrefix(idnumber, idNumberTag+idNumberDelimiter)
}

// SetIDFromIDNumber extracts the owning grouping set id from a managed
// idnumber. The second return value is false when the idnumber does not
// carry a positive set id.
func SetIDFromIDNumber(idnumber string) (uint64, bool) {
	if !IsManaged(idnumber) {
		return 0, false
	}

	parts := strings.SplitN(idnumber, idNumberDelimiter, 3)
	if len(parts) < 2 {
		return 0, false
	}

	setID, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil || setID == 0 {
		return 0, false
	}

	return setID, true
}
