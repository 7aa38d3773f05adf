package npc

import (
	"errors"

	"github.com/kasuganosora/topdownrpg/sim/game/quest"
)

// QuestState tracks where an NPC's quest offer stands with the player.
type QuestState uint8

const (
	QuestNone QuestState = iota
	QuestOffered
	QuestAccepted
	QuestDeclined
	QuestFailed
	QuestCompleted
)

var questStateNames = [...]string{"none", "offered", "accepted", "declined", "failed", "completed"}

func (s QuestState) String() string {
	if int(s) < len(questStateNames) {
		return questStateNames[s]
	}
	return "unknown"
}

// Action is what choosing a dialogue option does.
type Action string

const (
	ActionAccept  Action = "accept_quest"
	ActionDecline Action = "decline_quest"
)

// Option is one selectable answer in a prompt.
type Option struct {
	Text   string `json:"text"`
	Action Action `json:"action"`
}

// Prompt is the text the player sees while talking to an NPC.
type Prompt struct {
	Text    string   `json:"text"`
	Options []Option `json:"options,omitempty"`
}

// Empty reports whether there is nothing to show.
func (p Prompt) Empty() bool { return p.Text == "" && len(p.Options) == 0 }

// Offer is the quest an NPC hands out, with the lines that lead up to it.
type Offer struct {
	Prologue string
	Pitch    string
	Quest    quest.Def
}

// Dialogue node names.
const (
	nodeGreeting   = "greeting"
	nodePrologue   = "prologue"
	nodeQuestOffer = "quest_offer"
	nodeDeclined   = "declined"
	nodeCompleted  = "completed"
	nodeFailed     = "failed"
)

type node struct {
	text    string
	next    string
	options []Option
}

var (
	ErrNoOptions     = errors.New("npc: prompt has no options")
	ErrInvalidOption = errors.New("npc: option out of range")
	ErrNotOffered    = errors.New("npc: no quest on offer")
)

// Dialogue is the conversation and quest-offer state machine of one NPC.
//
// Talking walks greeting → prologue → quest_offer. Reaching the offer marks
// the quest Offered; accepting or declining ends the conversation. Declined,
// completed and failed offers stay put until the day after they concluded,
// then the tree starts over from the greeting.
type Dialogue struct {
	tree         map[string]node
	current      string
	state        QuestState
	offer        *Offer
	concludedDay int
}

// NewDialogue builds the tree for an NPC called name whose opening line is
// line. offer may be nil for NPCs without a quest.
func NewDialogue(name, line string, offer *Offer) *Dialogue {
	tree := map[string]node{
		nodeGreeting:  {text: line},
		nodeDeclined:  {text: name + ": Maybe another time."},
		nodeCompleted: {text: name + ": You did it! Thank you!"},
		nodeFailed:    {text: name + ": Oh no, we missed our chance!"},
	}
	if offer != nil {
		tree[nodeGreeting] = node{text: line, next: nodePrologue}
		tree[nodePrologue] = node{text: offer.Prologue, next: nodeQuestOffer}
		tree[nodeQuestOffer] = node{text: offer.Pitch, options: []Option{
			{Text: "Accept", Action: ActionAccept},
			{Text: "Decline", Action: ActionDecline},
		}}
	}
	return &Dialogue{tree: tree, current: nodeGreeting, offer: offer}
}

// State returns the quest-offer state.
func (d *Dialogue) State() QuestState { return d.state }

// Node returns the name of the current dialogue node.
func (d *Dialogue) Node() string { return d.current }

// HasOffer reports whether this NPC hands out a quest.
func (d *Dialogue) HasOffer() bool { return d.offer != nil }

// Interact advances the conversation by one line. greeting is the NPC's
// current small-talk line, shown once a quest is under way. day is the
// clock's day ordinal.
func (d *Dialogue) Interact(greeting string, day int) Prompt {
	d.Refresh(day)
	switch d.state {
	case QuestAccepted:
		return Prompt{Text: greeting}
	case QuestDeclined, QuestCompleted, QuestFailed:
		return Prompt{Text: d.tree[d.current].text}
	}

	cur := d.tree[d.current]
	if len(cur.options) > 0 {
		d.state = QuestOffered
		return d.prompt(cur)
	}
	if cur.next == "" {
		return Prompt{Text: cur.text}
	}
	d.current = cur.next
	next := d.tree[d.current]
	if len(next.options) > 0 {
		d.state = QuestOffered
	}
	return d.prompt(next)
}

func (d *Dialogue) prompt(n node) Prompt {
	p := Prompt{Text: n.text}
	if len(n.options) > 0 {
		p.Options = append([]Option(nil), n.options...)
	}
	return p
}

// Choose applies option index of the current prompt. On accept it returns
// the quest definition to start; the conversation is over either way.
func (d *Dialogue) Choose(index, day int) (*quest.Def, error) {
	opts := d.tree[d.current].options
	if len(opts) == 0 {
		return nil, ErrNoOptions
	}
	if index < 0 || index >= len(opts) {
		return nil, ErrInvalidOption
	}
	switch opts[index].Action {
	case ActionAccept:
		if d.state != QuestOffered || d.offer == nil {
			return nil, ErrNotOffered
		}
		d.state = QuestAccepted
		d.current = nodeGreeting
		def := d.offer.Quest
		return &def, nil
	case ActionDecline:
		d.state = QuestDeclined
		d.current = nodeDeclined
		d.concludedDay = day
		return nil, nil
	}
	return nil, ErrInvalidOption
}

// Conclude records how the accepted quest ended.
func (d *Dialogue) Conclude(completed bool, day int) {
	if completed {
		d.state, d.current = QuestCompleted, nodeCompleted
	} else {
		d.state, d.current = QuestFailed, nodeFailed
	}
	d.concludedDay = day
}

// Refresh starts the tree over once the day after a concluded offer arrives.
func (d *Dialogue) Refresh(day int) {
	switch d.state {
	case QuestDeclined, QuestCompleted, QuestFailed:
		if day > d.concludedDay {
			d.state = QuestNone
			d.current = nodeGreeting
		}
	}
}
