package dialog

import "strings"

// Action is one of the menu actions a party can pick.
type Action int

const (
	// ActionUnknown means no rule matched the input.
	ActionUnknown Action = iota
	// ActionWithdraw starts a pool withdrawal.
	ActionWithdraw
	// ActionSearch starts a directory search.
	ActionSearch
	// ActionStatus reports pool and directory sizes.
	ActionStatus
)

// Rule maps free-text input to a menu action. Rules are evaluated in
// order; the first match wins. Keeping them as data lets wording change
// without touching the state machine.
type Rule struct {
	Match  func(text string) bool
	Action Action
}

// DefaultRules recognizes the stock menu wording: keyword fragments for
// typed input plus the menu button emoji.
func DefaultRules() []Rule {
	return []Rule{
		{Match: containsAny("tirer", "numéro", "📱"), Action: ActionWithdraw},
		{Match: containsAny("recherch", "🔎"), Action: ActionSearch},
		{Match: containsAny("statut", "📊"), Action: ActionStatus},
	}
}

// matchAction runs the rule list over the input.
func matchAction(rules []Rule, text string) Action {
	for _, rule := range rules {
		if rule.Match != nil && rule.Match(text) {
			return rule.Action
		}
	}
	return ActionUnknown
}

func containsAny(fragments ...string) func(string) bool {
	return func(text string) bool {
		lower := strings.ToLower(text)
		for _, fragment := range fragments {
			if strings.Contains(lower, fragment) {
				return true
			}
		}
		return false
	}
}
