package catalog

import "fmt"

// PhaseSelection tracks the chosen phase and slot for a logging session.
type PhaseSelection struct {
	cat   *Catalog
	phase string
	slot  string
}

// NewSelection starts on the default phase and its configured first slot.
func (c *Catalog) NewSelection() *PhaseSelection {
	p := c.DefaultPhase()
	return &PhaseSelection{cat: c, phase: p.Key, slot: p.MealTimes[0]}
}

// SelectPhase switches phase and resets the slot to the phase's first slot.
func (s *PhaseSelection) SelectPhase(key string) error {
	p, ok := s.cat.Phase(key)
	if !ok {
		return fmt.Errorf("unknown phase %q", key)
	}
	s.phase = p.Key
	s.slot = ""
	if len(p.MealTimes) > 0 {
		s.slot = p.MealTimes[0]
	}
	return nil
}

// SelectSlot accepts only slots of the current phase.
func (s *PhaseSelection) SelectSlot(slot string) error {
	for _, t := range s.Slots() {
		if t == slot {
			s.slot = slot
			return nil
		}
	}
	return fmt.Errorf("slot %q is not part of phase %s", slot, s.phase)
}

func (s *PhaseSelection) Phase() string { return s.phase }
func (s *PhaseSelection) Slot() string  { return s.slot }

func (s *PhaseSelection) Slots() []string {
	p, _ := s.cat.Phase(s.phase)
	return p.MealTimes
}
