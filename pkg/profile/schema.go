package profile

import (
	"sort"

	"github.com/jeffcwolf/metadata-explorer/pkg/record"
)

// FieldInfo is one entry of the field catalog.
type FieldInfo struct {
	// Name is the top-level key.
	Name string `json:"name" yaml:"name"`
	// FieldType is the type label of the first non-null value seen, or
	// "null" when every value was null.
	FieldType string `json:"field_type" yaml:"field_type"`
	// SampleCount counts the records holding a non-null value for the key.
	SampleCount int `json:"sample_count" yaml:"sample_count"`
	// NullCount counts the records holding an explicit null.
	NullCount int `json:"null_count" yaml:"null_count"`
}

// Coverage returns the percentage of total records with a non-null value.
func (f FieldInfo) Coverage(total int) float64 {
	return Percent(f.SampleCount, total)
}

// InferSchema scans all records and returns the field catalog together with
// the field names, both sorted by name. Non-object records contribute
// nothing. A field's type is fixed by the first non-null value encountered
// in record order; later values of a different type do not change it.
func InferSchema(records []record.Value) ([]FieldInfo, []string) {
	byName := make(map[string]*FieldInfo)
	typed := make(map[string]bool)

	for _, rec := range records {
		if !rec.IsObject() {
			continue
		}

		for _, key := range rec.Keys() {
			value, _ := rec.Get(key)

			info, ok := byName[key]
			if !ok {
				info = &FieldInfo{Name: key, FieldType: record.KindNull.String()}
				byName[key] = info
			}

			if value.IsNull() {
				info.NullCount++

				continue
			}

			info.SampleCount++

			if !typed[key] {
				info.FieldType = record.TypeLabel(value)
				typed[key] = true
			}
		}
	}

	fields := make([]FieldInfo, 0, len(byName))
	names := make([]string, 0, len(byName))

	for name, info := range byName {
		fields = append(fields, *info)
		names = append(names, name)
	}

	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	sort.Strings(names)

	return fields, names
}

// Percent returns part/total*100, or 0 when total is zero.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}

	return float64(part) / float64(total) * percentScale
}

const percentScale = 100
