package voxel

type BlockState byte

const (
	Empty BlockState = iota
	Occupied
)

func (b BlockState) IsAir() bool {
	return b == Empty
}

func (b BlockState) String() string {
	if b == Occupied {
		return "occupied"
	}
	return "empty"
}
