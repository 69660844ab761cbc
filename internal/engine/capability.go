package engine

// ActionKind names an action or counteraction a participant can claim.
type ActionKind string

const (
	ActionIncome      ActionKind = "income"
	ActionForeignAid  ActionKind = "foreign_aid"
	ActionCoup        ActionKind = "coup"
	ActionTax         ActionKind = "tax"
	ActionAssassinate ActionKind = "assassinate"
	ActionSteal       ActionKind = "steal"
	ActionExchange    ActionKind = "exchange"

	BlockForeignAid      ActionKind = "block_foreign_aid"
	BlockSteal           ActionKind = "block_steal"
	BlockStealAmbassador ActionKind = "block_steal_ambassador"
	BlockAssassinate     ActionKind = "block_assassinate"
)

// Rule is one row of the action table.
type Rule struct {
	Kind          ActionKind
	Cost          int
	NeedsTarget   bool
	Challengeable bool
	Blockable     bool
	Requires      Character // CharNone if any participant may perform it
}

// BlockRule is one row of the counteraction table.
type BlockRule struct {
	Kind     ActionKind
	Requires Character
	Blocks   ActionKind
}

var actionRules = map[ActionKind]Rule{
	ActionIncome:      {Kind: ActionIncome},
	ActionForeignAid:  {Kind: ActionForeignAid, Blockable: true},
	ActionCoup:        {Kind: ActionCoup, Cost: 7, NeedsTarget: true},
	ActionTax:         {Kind: ActionTax, Challengeable: true, Requires: CharDuke},
	ActionAssassinate: {Kind: ActionAssassinate, Cost: 3, NeedsTarget: true, Blockable: true, Requires: CharAssassin},
	ActionSteal:       {Kind: ActionSteal, NeedsTarget: true, Blockable: true, Requires: CharCaptain},
	ActionExchange:    {Kind: ActionExchange, Challengeable: true, Requires: CharAmbassador},
}

// Table order; also the order deciders see actions offered in.
var actionOrder = []ActionKind{
	ActionIncome, ActionForeignAid, ActionCoup, ActionTax,
	ActionAssassinate, ActionSteal, ActionExchange,
}

var blockRules = []BlockRule{
	{Kind: BlockForeignAid, Requires: CharDuke, Blocks: ActionForeignAid},
	{Kind: BlockSteal, Requires: CharCaptain, Blocks: ActionSteal},
	{Kind: BlockStealAmbassador, Requires: CharAmbassador, Blocks: ActionSteal},
	{Kind: BlockAssassinate, Requires: CharContessa, Blocks: ActionAssassinate},
}

// LookupRule returns the table row for an action.
func LookupRule(kind ActionKind) (Rule, bool) {
	r, ok := actionRules[kind]
	return r, ok
}

// AllActions returns the seven base actions in table order.
func AllActions() []ActionKind {
	out := make([]ActionKind, len(actionOrder))
	copy(out, actionOrder)
	return out
}

// RequiredCharacter returns the character needed to truthfully claim kind,
// which may be an action or a block. ok is false when none is required.
func RequiredCharacter(kind ActionKind) (Character, bool) {
	if r, found := actionRules[kind]; found {
		return r.Requires, r.Requires != CharNone
	}
	for _, b := range blockRules {
		if b.Kind == kind {
			return b.Requires, true
		}
	}
	return CharNone, false
}

// QualifiedBlockers returns every character that may block action.
func QualifiedBlockers(action ActionKind) []Character {
	var out []Character
	for _, b := range blockRules {
		if b.Blocks == action {
			out = append(out, b.Requires)
		}
	}
	return out
}

// BlockKindFor returns the counteraction name used when claiming a block
// against action.
func BlockKindFor(action ActionKind) ActionKind {
	for _, b := range blockRules {
		if b.Blocks == action {
			return b.Kind
		}
	}
	return ""
}

// ClaimQualifiers lists the characters that make a claim truthful. claim may
// be an action or a block kind.
func ClaimQualifiers(claim ActionKind) []Character {
	if r, ok := actionRules[claim]; ok {
		if r.Requires == CharNone {
			return nil
		}
		return []Character{r.Requires}
	}
	for _, b := range blockRules {
		if b.Kind == claim {
			return QualifiedBlockers(b.Blocks)
		}
	}
	return nil
}

// IsBlock reports whether kind names a counteraction.
func IsBlock(kind ActionKind) bool {
	for _, b := range blockRules {
		if b.Kind == kind {
			return true
		}
	}
	return false
}
