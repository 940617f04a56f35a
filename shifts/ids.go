package shifts

import "github.com/google/uuid"

// EnsureIDs assigns a fresh uuid to the rotation and any slot or assignment
// that has none. Rotations built in memory (tests, the example binary,
// settings flows that have not persisted yet) need ids before expansion so
// occurrence ids stay deterministic afterwards.
func EnsureIDs(rotation *Rotation) {
	if rotation.ID == "" {
		rotation.ID = uuid.NewString()
	}
	for i := range rotation.Slots {
		if rotation.Slots[i].ID == "" {
			rotation.Slots[i].ID = uuid.NewString()
		}
	}
	for i := range rotation.Assignments {
		if rotation.Assignments[i].ID == "" {
			rotation.Assignments[i].ID = uuid.NewString()
		}
		if rotation.Assignments[i].RotationID == "" {
			rotation.Assignments[i].RotationID = rotation.ID
		}
	}
}
