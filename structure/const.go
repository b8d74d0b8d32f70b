package structure

const (
	// NullIndex marks the absence of a handle.
	NullIndex int32 = -1

	DefaultGrowthFactor = 2 // Default expansion factor
)
