package quest

import "fmt"

// Elimination completes when an attack leaves the target enemy dead inside
// the hour window. Only attacks are checked; one landing outside the window
// fails the quest.
type Elimination struct {
	base
}

// NewElimination returns an Inactive elimination quest.
func NewElimination(def Def) *Elimination {
	def.Kind = KindElimination
	return &Elimination{base: base{def: def}}
}

// InWindow reports whether hour lies in [StartHour, EndHour), wrapping past
// midnight when the window does.
func (q *Elimination) InWindow(hour int) bool {
	s, e := q.def.StartHour, q.def.EndHour
	if s <= e {
		return s <= hour && hour < e
	}
	return hour >= s || hour < e
}

func (q *Elimination) CheckCompletion(obs Observation) (Notification, bool) {
	if !q.live(obs) || obs.Kind != ObservedAttack {
		return Notification{}, false
	}
	if !q.InWindow(obs.Hour) {
		return q.finish(Failed), true
	}
	if obs.Target == q.def.Target && !obs.TargetAlive {
		return q.finish(Completed), true
	}
	return Notification{}, false
}

func (q *Elimination) Progress() string {
	if s, ok := q.settled(); ok {
		return s
	}
	return fmt.Sprintf("Kill %s: No", q.def.TargetName)
}

func (q *Elimination) TimeInfo() string {
	return fmt.Sprintf("Time: %02d:00-%02d:00", q.def.StartHour, q.def.EndHour)
}
