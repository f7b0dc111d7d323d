package work

// Contains the minimal data needed to classify a single point
// neighborhood, i.e. the index of the point in the working cloud.
type WorkUnit struct {
	Index int
}
