package sliceutils

import "golang.org/x/text/unicode/norm"

// GetString returns the NFC normalized string at index, or false when the slice is too short
func GetString(slice []string, index int) (string, bool) {
	if index < 0 || index > len(slice)-1 {
		return "", false
	}
	// return normalized string
	return norm.NFC.String(slice[index]), true
}
