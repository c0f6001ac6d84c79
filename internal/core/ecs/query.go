package ecs

// Each2 calls fn for every owner holding components of both type A and B.
// Owners are visited in slice order.
func Each2[A, B any](owners []*ComponentOwner, fn func(*ComponentOwner, A, B)) {
	for _, o := range owners {
		a, ok := GetComponent[A](o)
		if !ok {
			continue
		}
		b, ok := GetComponent[B](o)
		if !ok {
			continue
		}
		fn(o, a, b)
	}
}

// Each1 calls fn for every owner holding a component of type A.
func Each1[A any](owners []*ComponentOwner, fn func(*ComponentOwner, A)) {
	for _, o := range owners {
		if a, ok := GetComponent[A](o); ok {
			fn(o, a)
		}
	}
}
