package model

import "github.com/google/uuid"

// BlockOptions is one vacation block's candidate start weeks, in
// priority order (first = priority 1, most preferred).
type BlockOptions struct {
	StartWeeks []int // up to two candidate start weeks
}

// HardLock pins a specific 2-week vacation window, overriding that
// block's selection. Legacy data path; see VacationRequest.HardLockA and
// VacationRequest.HardLockB.
type HardLock struct {
	StartWeek int
}

// VacationRequest is a resident's preferred vacation placement: two
// blocks (A, B), each with up to two candidate start weeks. A
// non-nil HardLock overrides block selection for that block.
type VacationRequest struct {
	ResidentID uuid.UUID
	BlockA     BlockOptions
	BlockB     BlockOptions
	Priority   int // 1 = highest; feeds the vacation-priority soft bonus

	HardLockA *HardLock
	HardLockB *HardLock
}
