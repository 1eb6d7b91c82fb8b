package model

import "github.com/google/uuid"

// WeeksPerYear is the fixed horizon the engine schedules over.
const WeeksPerYear = 52

// Assignment maps every (resident, week) to exactly one rotation code.
// Week numbers are 1..WeeksPerYear.
type Assignment map[uuid.UUID]map[int]string

// Set records r's rotation code for week w, allocating the inner map
// on first use.
func (a Assignment) Set(r uuid.UUID, w int, code string) {
	weeks, ok := a[r]
	if !ok {
		weeks = make(map[int]string, WeeksPerYear)
		a[r] = weeks
	}
	weeks[w] = code
}

// Get returns r's rotation code for week w and whether it was set.
func (a Assignment) Get(r uuid.UUID, w int) (string, bool) {
	weeks, ok := a[r]
	if !ok {
		return "", false
	}
	code, ok := weeks[w]
	return code, ok
}

// SolveStatus is the terminal state of a solve attempt.
type SolveStatus string

const (
	StatusBuilding    SolveStatus = "BUILDING"
	StatusSubmitted   SolveStatus = "SUBMITTED"
	StatusSearching   SolveStatus = "SEARCHING"
	StatusOptimal     SolveStatus = "OPTIMAL"
	StatusFeasible    SolveStatus = "FEASIBLE"
	StatusInfeasible  SolveStatus = "INFEASIBLE"
	StatusTimeout     SolveStatus = "TIMEOUT"
)

// Succeeded reports whether an assignment is present for this status.
func (s SolveStatus) Succeeded() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// ConflictReport accompanies a failed solve: the terminal status plus
// every human-readable hint that might explain it.
type ConflictReport struct {
	Status            SolveStatus
	HardLockWindows    []HardLockWindow
	Hints             []string
}

// HardLockWindow names one resident's hard-locked vacation window, the
// most common human cause of infeasibility.
type HardLockWindow struct {
	ResidentID uuid.UUID
	ResidentName string
	StartWeek  int
	Length     int
}
