package ecs_test

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

type AI struct {
	State int
}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string
type Temperature float64

type Inventory struct {
	Items []string
}

type Stats struct {
	Attributes map[string]int
}

type Inner struct {
	Value int
}

type Outer struct {
	Data *Inner
	List []*Inner
}

// Common test resource types
type GameTime struct {
	Elapsed float64
}

type FrameCounter struct {
	Frames int
}

func ptr[T any](v T) *T {
	return &v
}
