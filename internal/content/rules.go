// Package content maps campaign content types to prompt templates and model tiers.
package content

import (
	"errors"
	"fmt"
)

// Type is one of the fixed categories a game master can request
type Type string

const (
	TypeNPC        Type = "NPC"
	TypeNPCHistory Type = "NPC History"
	TypeVillage    Type = "Village"
	TypeArea       Type = "Area"
	TypeDialogue   Type = "Dialogue"
	TypeQuest      Type = "Quest"
	TypeMagicItem  Type = "Magic Item"
)

// Tier selects which model family serves a content type
type Tier string

const (
	TierConversational Tier = "conversational" // narrative and character content
	TierInstruct       Tier = "instruct"       // structured content such as quests and items
)

// ErrUnknownType is returned for a content type outside the routing table
var ErrUnknownType = errors.New("unknown content type")

// Rule binds a content type to its tier and prompt template.
// Template has exactly one %s hole for the theme.
type Rule struct {
	Type     Type
	Tier     Tier
	Template string
}

// order is the dropdown order
var order = []Type{
	TypeNPC,
	TypeNPCHistory,
	TypeVillage,
	TypeArea,
	TypeDialogue,
	TypeQuest,
	TypeMagicItem,
}

var rules = map[Type]Rule{
	TypeNPC: {
		Type:     TypeNPC,
		Tier:     TierConversational,
		Template: "Create a compelling NPC with personality, appearance, and motivation. Theme: %s. Write exactly 3-4 sentences. Be concise..",
	},
	TypeNPCHistory: {
		Type:     TypeNPCHistory,
		Tier:     TierConversational,
		Template: "Write a rich backstory for an NPC. Include origins, key events, and secrets. Theme: %s. Write exactly 4 sentences maximum..",
	},
	TypeVillage: {
		Type:     TypeVillage,
		Tier:     TierConversational,
		Template: "Describe a fantasy village or settlement. Include location, inhabitants, and unique features. Theme: %s. Write exactly 3 to 5 sentences maximum.",
	},
	TypeArea: {
		Type:     TypeArea,
		Tier:     TierConversational,
		Template: "Describe a area with details and interest points. Theme: %s. 3-5 sentences. Keep it brief.",
	},
	TypeDialogue: {
		Type:     TypeDialogue,
		Tier:     TierConversational,
		Template: "Write an engaging dialogue snippet between characters. Theme: %s. Keep it to 3-4 lines.",
	},
	TypeQuest: {
		Type:     TypeQuest,
		Tier:     TierInstruct,
		Template: "Create a structured quest with objective, challenges, and reward. Theme: %s. Write exactly 4 sentences.",
	},
	TypeMagicItem: {
		Type:     TypeMagicItem,
		Tier:     TierInstruct,
		Template: "Design a balanced magic item with description, abilities, and lore. Theme: %s. Write exactly 3 sentences.",
	},
}

// Types returns every content type in dropdown order
func Types() []Type {
	out := make([]Type, len(order))
	copy(out, order)
	return out
}

// Parse converts a display value into a Type
func Parse(s string) (Type, error) {
	t := Type(s)
	if _, ok := rules[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
	return t, nil
}

// RuleFor returns the routing rule for t
func RuleFor(t Type) (Rule, error) {
	r, ok := rules[t]
	if !ok {
		return Rule{}, fmt.Errorf("%w: %q", ErrUnknownType, string(t))
	}
	return r, nil
}
