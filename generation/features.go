package generation

// FeatureKind tags an intermediate carved region.
type FeatureKind string

const (
	FeatureCave   FeatureKind = "cave"
	FeatureTunnel FeatureKind = "tunnel"
	FeatureHouse  FeatureKind = "house"
	FeatureRoad   FeatureKind = "road"
)

// Feature is an intermediate region owned by the carver: a house, cave
// chamber, tunnel segment or road strip. Features exist only during
// generation; once the structure placer has run, the cells belong to the
// shared grid and the feature list is discarded.
type Feature struct {
	Kind FeatureKind

	// Bounding box
	X, Y, Width, Height int

	// Entry cells are the openings that connect the feature's interior
	// to the main traversable space. A feature with no reachable entry
	// is a generation defect the validator must catch.
	Entry [][2]int
}

// Contains reports whether (x, y) falls inside the feature's bounding box.
func (f *Feature) Contains(x, y int) bool {
	return x >= f.X && x < f.X+f.Width && y >= f.Y && y < f.Y+f.Height
}
