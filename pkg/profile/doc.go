// Package profile implements the dataset profiler: field catalog inference,
// structural quality scanning, per-field facet distributions and pattern
// classification of string values.
//
// Every exported analysis function is a pure function of an immutable record
// slice. Functions never mutate their input and keep no state between calls,
// so independent analyses may run concurrently over the same records.
package profile
