package quest

import "fmt"

// Delivery completes when the player talks to the target before the
// deadline hour. Only conversations are checked; the first one at or after
// the deadline fails the quest.
type Delivery struct {
	base
}

// NewDelivery returns an Inactive delivery quest.
func NewDelivery(def Def) *Delivery {
	def.Kind = KindDelivery
	return &Delivery{base{def: def}}
}

func (q *Delivery) CheckCompletion(obs Observation) (Notification, bool) {
	if !q.live(obs) || obs.Kind != ObservedInteraction {
		return Notification{}, false
	}
	if obs.Hour >= q.def.DeadlineHour {
		return q.finish(Failed), true
	}
	if obs.Target == q.def.Target {
		return q.finish(Completed), true
	}
	return Notification{}, false
}

func (q *Delivery) Progress() string {
	if s, ok := q.settled(); ok {
		return s
	}
	return fmt.Sprintf("Deliver to %s: No", q.def.TargetName)
}

func (q *Delivery) TimeInfo() string {
	return fmt.Sprintf("Deadline: %02d:00", q.def.DeadlineHour)
}
