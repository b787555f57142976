package utils

import "strings"

// UniqueStrings removes duplicate values from a slice of strings,
// preserving first-seen order. Comparison ignores surrounding space.
func UniqueStrings(slice []string) []string {
	keys := make(map[string]bool)
	list := []string{}
	for _, entry := range slice {
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		if !keys[trimmed] {
			keys[trimmed] = true
			list = append(list, trimmed)
		}
	}
	return list
}
