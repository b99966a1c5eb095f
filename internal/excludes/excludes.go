// Package excludes computes the exclusion patterns applied to a component's source folders
// before they are handed to the duplicate code detector.
package excludes

import (
	"errors"
	"sort"

	"github.com/goliatone/nwdi-cpd/internal/component"
)

// ErrInvalidArgument is returned when no component is supplied.
var ErrInvalidArgument = errors.New("excludes: component is required")

// Sources generated from data dictionary definitions live below gen_ddic.
const dataDictionaryExclude = "**/gen_ddic/**"

// Web Dynpro keeps its generated controller proxies in wdp packages.
const webDynproExclude = "**/wdp/**"

// WebDynproGeneratedMarker matches the header the Web Dynpro generator writes into
// generated sources that end up outside the wdp packages.
const WebDynproGeneratedMarker = `Generated by SAP NetWeaver Developer Studio`

var defaultFileExcludes = []string{dataDictionaryExclude}

var typeFileExcludes = map[component.Type][]string{
	component.TypeWebDynpro: {webDynproExclude},
}

var typeContainsRegexpExcludes = map[component.Type][]string{
	component.TypeWebDynpro: {WebDynproGeneratedMarker},
}

// Create returns the filename glob excludes for c: the base excludes combined with the
// defaults for every component and the defaults of its type.
func Create(c *component.Component, base []string) ([]string, error) {
	if c == nil {
		return nil, ErrInvalidArgument
	}

	return union(base, defaultFileExcludes, typeFileExcludes[c.Type]), nil
}

// CreateContainsRegexpExcludes returns the content regexp excludes for c: files whose
// content matches one of the expressions are skipped.
func CreateContainsRegexpExcludes(c *component.Component, base []string) ([]string, error) {
	if c == nil {
		return nil, ErrInvalidArgument
	}

	return union(base, typeContainsRegexpExcludes[c.Type]), nil
}

// union merges the given sets into a sorted slice without duplicates or blanks.
func union(sets ...[]string) []string {
	seen := make(map[string]struct{})
	result := []string{}
	for _, set := range sets {
		for _, pattern := range set {
			if pattern == "" {
				continue
			}
			if _, ok := seen[pattern]; ok {
				continue
			}
			seen[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	sort.Strings(result)
	return result
}
