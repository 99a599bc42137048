package pokeapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// The raw* types mirror the parts of PokeAPI documents the service reads.
// Fields named Data hold the document resolved from the sibling URL, merged
// under tree.DefaultField.

type named struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type linked[T any] struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Data *T     `json:"data"`
}

type rawPokemon struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Height         int    `json:"height"`
	Weight         int    `json:"weight"`
	BaseExperience *int   `json:"base_experience"`
	Types          []struct {
		Slot int   `json:"slot"`
		Type named `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int   `json:"base_stat"`
		Stat     named `json:"stat"`
	} `json:"stats"`
	Sprites   rawSprites         `json:"sprites"`
	Species   linked[rawSpecies] `json:"species"`
	Abilities []rawAbilitySlot   `json:"abilities"`
	Moves     []rawMoveSlot      `json:"moves"`
	Forms     []linked[rawForm]  `json:"forms"`
}

type rawSprites struct {
	FrontDefault *string `json:"front_default"`
	Other        map[string]struct {
		FrontDefault *string `json:"front_default"`
	} `json:"other"`
}

type rawSpecies struct {
	FlavorTextEntries []struct {
		FlavorText string `json:"flavor_text"`
		Language   named  `json:"language"`
	} `json:"flavor_text_entries"`
	Genera []struct {
		Genus    string `json:"genus"`
		Language named  `json:"language"`
	} `json:"genera"`
}

type rawAbilitySlot struct {
	IsHidden bool               `json:"is_hidden"`
	Slot     int                `json:"slot"`
	Ability  linked[rawAbility] `json:"ability"`
}

type rawAbility struct {
	EffectEntries []struct {
		Effect      string `json:"effect"`
		ShortEffect string `json:"short_effect"`
		Language    named  `json:"language"`
	} `json:"effect_entries"`
}

type rawMoveSlot struct {
	Move                linked[rawMove] `json:"move"`
	VersionGroupDetails []struct {
		LevelLearnedAt  int   `json:"level_learned_at"`
		MoveLearnMethod named `json:"move_learn_method"`
	} `json:"version_group_details"`
}

type rawMove struct {
	Power             *int   `json:"power"`
	Accuracy          *int   `json:"accuracy"`
	PP                *int   `json:"pp"`
	Type              *named `json:"type"`
	DamageClass       *named `json:"damage_class"`
	FlavorTextEntries []struct {
		FlavorText string `json:"flavor_text"`
		Language   named  `json:"language"`
	} `json:"flavor_text_entries"`
}

type rawForm struct {
	IsDefault    bool       `json:"is_default"`
	IsMega       bool       `json:"is_mega"`
	IsBattleOnly bool       `json:"is_battle_only"`
	Sprites      rawSprites `json:"sprites"`
}

type rawIndex struct {
	Count   int     `json:"count"`
	Results []named `json:"results"`
}

// decode converts a decoded JSON tree into T.
func decode[T any](doc any) (*T, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}

	var out T

	err = json.Unmarshal(raw, &out)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedDocument, err)
	}

	return &out, nil
}

const english = "en"

// cleanText folds the line breaks and form feeds PokeAPI keeps from the
// game text into single spaces.
func cleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
