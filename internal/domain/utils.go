package domain

// Unique returns the elements of items in first-occurrence order with duplicates removed
func Unique[T comparable](items []T) []T {
	if items == nil {
		return nil
	}
	seen := make(map[T]struct{}, len(items))
	result := make([]T, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		result = append(result, item)
	}
	return result
}

// Ptr returns a pointer to v. Handy for building optional fields.
func Ptr[T any](v T) *T {
	return &v
}

// valueOr dereferences p, returning fallback when p is nil
func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// ptrEqual treats two absent values as equal
func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
