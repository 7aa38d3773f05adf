package quest

import "go.uber.org/zap"

// Rewarder receives reward tokens.
type Rewarder interface {
	Grant(token string) error
}

// Ledger is the player's quest list. It starts accepted quests, routes
// observations to the active ones and grants each reward exactly once.
type Ledger struct {
	quests  []Quest
	rewards Rewarder
	logger  *zap.Logger
}

// NewLedger creates an empty Ledger paying rewards into rewards.
func NewLedger(rewards Rewarder, logger *zap.Logger) *Ledger {
	return &Ledger{rewards: rewards, logger: logger}
}

// Accept starts q and adds it to the list. A quest that has already been
// started is rejected.
func (l *Ledger) Accept(q Quest) (Notification, error) {
	if q.Status() != Inactive {
		return Notification{}, ErrAlreadyAccepted
	}
	n := q.Start()
	l.quests = append(l.quests, q)
	l.logger.Info("quest started",
		zap.String("quest", q.Def().Name),
		zap.Stringer("giver", q.Def().Giver))
	return n, nil
}

// Observe checks every active quest against obs and returns the
// notifications of the quests that transitioned.
func (l *Ledger) Observe(obs Observation) []Notification {
	var out []Notification
	for _, q := range l.quests {
		if q.Status() != Active {
			continue
		}
		n, ok := q.CheckCompletion(obs)
		if !ok {
			continue
		}
		out = append(out, n)
		l.settle(q)
	}
	return out
}

func (l *Ledger) settle(q Quest) {
	def := q.Def()
	if q.Status() != Completed {
		l.logger.Info("quest failed", zap.String("quest", def.Name))
		return
	}
	l.logger.Info("quest completed",
		zap.String("quest", def.Name),
		zap.String("reward", def.Reward))
	if def.Reward == "" || l.rewards == nil {
		return
	}
	if err := l.rewards.Grant(def.Reward); err != nil {
		l.logger.Warn("quest reward dropped",
			zap.String("quest", def.Name),
			zap.Error(err))
	}
}

// Quests returns the accepted quests in acceptance order.
func (l *Ledger) Quests() []Quest {
	out := make([]Quest, len(l.quests))
	copy(out, l.quests)
	return out
}

// Active returns the quests still running.
func (l *Ledger) Active() []Quest {
	var out []Quest
	for _, q := range l.quests {
		if q.Status() == Active {
			out = append(out, q)
		}
	}
	return out
}
