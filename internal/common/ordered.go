package common

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Keys returns the keys of om from oldest to newest insertion.
func Keys[K comparable, V any](om *orderedmap.OrderedMap[K, V]) []K {
	if om == nil {
		return nil
	}

	keys := make([]K, 0, om.Len())
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}

	return keys
}

// Values returns the values of om from oldest to newest insertion.
func Values[K comparable, V any](om *orderedmap.OrderedMap[K, V]) []V {
	if om == nil {
		return nil
	}

	values := make([]V, 0, om.Len())
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		values = append(values, pair.Value)
	}

	return values
}
