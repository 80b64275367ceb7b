// parse.go
//
// Enterprise registry with free-text values and a value-frequency chart
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of enterprise-values.
// enterprise-values is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// enterprise-values is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with enterprise-values.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package values normalizes free-text value tags and aggregates how often
// each value is used across enterprises.
package values

import (
	"strings"
)

// DisplaySeparator joins parsed tags back into an editable string
const DisplaySeparator = ", "

// Parse splits raw on sep into trimmed, lower-cased tags.
//
// Duplicates are removed case-insensitively keeping the first occurrence and
// its position. Lower-casing runs after de-duplication, so the casing kept by
// that step never survives into the result. Blank input yields an empty slice.
func Parse(raw, sep string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}

	pieces := strings.Split(raw, sep)
	for i, p := range pieces {
		pieces[i] = strings.TrimSpace(p)
	}

	tags := removeDuplicates(pieces)
	for i, t := range tags {
		tags[i] = strings.ToLower(t)
	}
	return tags
}

// Display renders tags the way they are shown back in an input field
func Display(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return strings.Join(tags, DisplaySeparator)
}

// removeDuplicates keeps the first occurrence of each case-insensitive key
func removeDuplicates(seq []string) []string {
	seen := make(map[string]struct{}, len(seq))
	out := make([]string, 0, len(seq))
	for _, item := range seq {
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
