// Package schemadiff compares the field catalogs of two datasets.
package schemadiff

import (
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/jeffcwolf/metadata-explorer/pkg/profile"
)

// TypeChange is a field present on both sides whose detected type differs.
type TypeChange struct {
	Field   string `json:"field" yaml:"field"`
	OldType string `json:"old_type" yaml:"old_type"`
	NewType string `json:"new_type" yaml:"new_type"`
}

// Result lists catalog differences, each list sorted by field name.
type Result struct {
	Added       []profile.FieldInfo `json:"added" yaml:"added"`
	Removed     []profile.FieldInfo `json:"removed" yaml:"removed"`
	TypeChanged []TypeChange        `json:"type_changed" yaml:"type_changed"`
}

// Empty reports whether both catalogs describe the same fields and types.
func (r Result) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.TypeChanged) == 0
}

// Compare diffs two catalogs by field name.
func Compare(oldFields, newFields []profile.FieldInfo) Result {
	before := index(oldFields)
	after := index(newFields)

	result := Result{
		Added:       []profile.FieldInfo{},
		Removed:     []profile.FieldInfo{},
		TypeChanged: []TypeChange{},
	}

	for name, nf := range after {
		of, ok := before[name]
		if !ok {
			result.Added = append(result.Added, nf)

			continue
		}

		if of.FieldType != nf.FieldType {
			result.TypeChanged = append(result.TypeChanged, TypeChange{Field: name, OldType: of.FieldType, NewType: nf.FieldType})
		}
	}

	for name, of := range before {
		if _, ok := after[name]; !ok {
			result.Removed = append(result.Removed, of)
		}
	}

	sort.Slice(result.Added, func(i, j int) bool { return result.Added[i].Name < result.Added[j].Name })
	sort.Slice(result.Removed, func(i, j int) bool { return result.Removed[i].Name < result.Removed[j].Name })
	sort.Slice(result.TypeChanged, func(i, j int) bool { return result.TypeChanged[i].Field < result.TypeChanged[j].Field })

	return result
}

// Unified renders a line diff of the two catalogs, one "name: type" line per
// field. Lines are prefixed with "+ ", "- " or two spaces.
func Unified(oldFields, newFields []profile.FieldInfo) string {
	dmp := diffmatchpatch.New()

	left, right, lines := dmp.DiffLinesToChars(catalogText(oldFields), catalogText(newFields))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(left, right, false), lines)

	var sb strings.Builder

	for _, d := range diffs {
		prefix := "  "

		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffEqual:
		}

		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}

			sb.WriteString(prefix)
			sb.WriteString(line)
		}
	}

	return sb.String()
}

func index(fields []profile.FieldInfo) map[string]profile.FieldInfo {
	out := make(map[string]profile.FieldInfo, len(fields))
	for _, f := range fields {
		out[f.Name] = f
	}

	return out
}

func catalogText(fields []profile.FieldInfo) string {
	sorted := make([]profile.FieldInfo, len(fields))
	copy(sorted, fields)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var sb strings.Builder
	for _, f := range sorted {
		sb.WriteString(f.Name)
		sb.WriteString(": ")
		sb.WriteString(f.FieldType)
		sb.WriteByte('\n')
	}

	return sb.String()
}
