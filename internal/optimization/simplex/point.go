package simplex

// Point is an evaluated location in the internal unit coordinate system.
// A Point is created exactly once per evaluation and shared by pointer among
// every simplex that has it as a corner; it is never mutated afterwards, so
// sharing needs no synchronization.
type Point struct {
	// Coordinates of the point in the internal unit representation.
	Coordinates []float64
	// Value observed at Coordinates. Internally the engine always maximizes;
	// minimization is handled by negation at the API boundary.
	Value float64
}
