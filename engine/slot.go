// Package engine holds the tournament fixture and bracket algorithms:
// round-robin generation, group standings, qualifier selection, single
// elimination bracket building, result propagation and court scheduling.
// Everything in here is a pure function over plain data; persistence and
// transactions are the caller's concern.
package engine

import "strings"

// SlotState tags what currently occupies a bracket slot.
type SlotState int

const (
	// SlotAwaiting marks a slot that will be filled by an earlier match's
	// winner (or loser, for the bronze match).
	SlotAwaiting SlotState = iota
	// SlotBye marks a slot that will never be filled; its opponent advances.
	SlotBye
	// SlotOccupied marks a slot holding a real registration.
	SlotOccupied
)

// Slot is a tagged occupant of one side of a bracket match. It replaces the
// legacy convention of encoding vacancy in id prefixes.
type Slot struct {
	state SlotState
	id    string
}

func Occupied(registrationID string) Slot {
	return Slot{state: SlotOccupied, id: registrationID}
}

func Bye() Slot {
	return Slot{state: SlotBye}
}

func Awaiting() Slot {
	return Slot{state: SlotAwaiting}
}

func (s Slot) State() SlotState {
	return s.state
}

// RegistrationID returns the occupant id and whether the slot is occupied.
func (s Slot) RegistrationID() (string, bool) {
	if s.state != SlotOccupied {
		return "", false
	}
	return s.id, true
}

// Open reports whether propagation may write into this slot. Only a real
// occupant blocks a write.
func (s Slot) Open() bool {
	return s.state != SlotOccupied
}

// SlotFromStored interprets a persisted team reference. Legacy admin tooling
// wrote placeholder ids with bye-/empty-/pending- prefixes instead of leaving
// the column NULL; those are placeholders, never real occupants. No other
// code may inspect id prefixes.
func SlotFromStored(id *string) Slot {
	if id == nil || *id == "" {
		return Awaiting()
	}
	switch {
	case strings.HasPrefix(*id, "bye-"):
		return Bye()
	case strings.HasPrefix(*id, "empty-"), strings.HasPrefix(*id, "pending-"):
		return Awaiting()
	}
	return Occupied(*id)
}
