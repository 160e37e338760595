package profile

// CardinalityClass buckets a field by how many distinct values it takes.
type CardinalityClass string

// Cardinality classes.
const (
	CardinalityUnique          CardinalityClass = "unique"
	CardinalityNearUnique      CardinalityClass = "near_unique"
	CardinalityEnumLike        CardinalityClass = "enum_like"
	CardinalityLowCardinality  CardinalityClass = "low_cardinality"
	CardinalityHighCardinality CardinalityClass = "high_cardinality"
	CardinalityEmpty           CardinalityClass = "empty"
)

const (
	nearUniqueRatio   = 0.9
	enumLikeMax       = 20
	lowCardinalityMax = 200
)

// ClassifyCardinality compares the distinct value count of a field with the
// number of its non-null values.
func ClassifyCardinality(fa FacetAnalysis) CardinalityClass {
	nonNull := fa.TotalValues - fa.NullCount
	distinct := fa.UniqueValues

	switch {
	case nonNull <= 0:
		return CardinalityEmpty
	case distinct == nonNull:
		return CardinalityUnique
	case float64(distinct)/float64(nonNull) >= nearUniqueRatio:
		return CardinalityNearUnique
	case distinct <= enumLikeMax:
		return CardinalityEnumLike
	case distinct <= lowCardinalityMax:
		return CardinalityLowCardinality
	default:
		return CardinalityHighCardinality
	}
}
