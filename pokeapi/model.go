package pokeapi

import (
	"slices"
	"strings"
)

// Pokemon is the basic record of a Pokémon.
type Pokemon struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Height         int      `json:"height"`
	Weight         int      `json:"weight"`
	BaseExperience *int     `json:"base_experience"`
	Types          []string `json:"types"`
	Stats          []Stat   `json:"stats"`
	Sprites        Sprites  `json:"sprites"`
	Species        Species  `json:"species"`
}

// Stat is a base stat.
type Stat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Sprites holds the picture shown for a Pokémon or form.
type Sprites struct {
	FrontDefault *string `json:"front_default"`
}

// Species carries the species name and, once resolved, its English texts.
type Species struct {
	Name       string  `json:"name"`
	Genus      *string `json:"genus,omitempty"`
	FlavorText *string `json:"flavor_text,omitempty"`
}

// Overview is the short form of Pokemon.
type Overview struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Height         int      `json:"height"`
	Weight         int      `json:"weight"`
	BaseExperience *int     `json:"base_experience"`
	Types          []string `json:"types"`
}

// Ability is one ability slot. Effect is set when the ability document was
// fetched and has an English entry.
type Ability struct {
	Name     string  `json:"name"`
	IsHidden bool    `json:"is_hidden"`
	Effect   *string `json:"effect,omitempty"`
}

// Move is one learnable move. Level-up details and move details are omitted
// when unavailable.
type Move struct {
	Name           string  `json:"name"`
	LevelLearnedAt *int    `json:"level_learned_at,omitempty"`
	LearnMethod    string  `json:"learn_method,omitempty"`
	Power          *int    `json:"power,omitempty"`
	Accuracy       *int    `json:"accuracy,omitempty"`
	PP             *int    `json:"pp,omitempty"`
	Type           string  `json:"type,omitempty"`
	DamageClass    string  `json:"damage_class,omitempty"`
	Description    *string `json:"description,omitempty"`
}

// Form is one form of a Pokémon. Details are set when the form document was
// fetched.
type Form struct {
	Name         string   `json:"name"`
	IsDefault    *bool    `json:"is_default,omitempty"`
	IsMega       *bool    `json:"is_mega,omitempty"`
	IsBattleOnly *bool    `json:"is_battle_only,omitempty"`
	Sprites      *Sprites `json:"sprites,omitempty"`
}

// Page is one page of search results.
type Page struct {
	Items    []Pokemon `json:"items"`
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
	Total    int       `json:"total"`
}

func (p *rawPokemon) basic() Pokemon {
	record := Pokemon{
		ID:             p.ID,
		Name:           p.Name,
		Height:         p.Height,
		Weight:         p.Weight,
		BaseExperience: p.BaseExperience,
		Types:          make([]string, 0, len(p.Types)),
		Stats:          make([]Stat, 0, len(p.Stats)),
		Sprites:        Sprites{FrontDefault: p.Sprites.preferred()},
		Species:        Species{Name: p.Species.Name},
	}

	for _, slot := range p.Types {
		if !slices.Contains(record.Types, slot.Type.Name) {
			record.Types = append(record.Types, slot.Type.Name)
		}
	}

	for _, stat := range p.Stats {
		record.Stats = append(record.Stats, Stat{Name: stat.Stat.Name, Value: stat.BaseStat})
	}

	if species := p.Species.Data; species != nil {
		for _, entry := range species.FlavorTextEntries {
			if entry.Language.Name == english {
				text := cleanText(entry.FlavorText)
				record.Species.FlavorText = &text

				break
			}
		}

		for _, entry := range species.Genera {
			if entry.Language.Name == english {
				genus := entry.Genus
				record.Species.Genus = &genus

				break
			}
		}
	}

	return record
}

func (p Pokemon) overview() Overview {
	return Overview{
		ID:             p.ID,
		Name:           p.Name,
		Height:         p.Height,
		Weight:         p.Weight,
		BaseExperience: p.BaseExperience,
		Types:          p.Types,
	}
}

// preferred returns the official artwork, falling back to the default sprite.
func (s rawSprites) preferred() *string {
	if artwork, ok := s.Other["official-artwork"]; ok && artwork.FrontDefault != nil {
		return artwork.FrontDefault
	}

	return s.FrontDefault
}

func (p *rawPokemon) abilities() []Ability {
	abilities := make([]Ability, 0, len(p.Abilities))

	for _, slot := range p.Abilities {
		ability := Ability{Name: slot.Ability.Name, IsHidden: slot.IsHidden}

		if detail := slot.Ability.Data; detail != nil {
			for _, entry := range detail.EffectEntries {
				if entry.Language.Name == english {
					effect := entry.Effect
					ability.Effect = &effect

					break
				}
			}
		}

		abilities = append(abilities, ability)
	}

	return abilities
}

const levelUp = "level-up"

func (p *rawPokemon) moves() []Move {
	moves := make([]Move, 0, len(p.Moves))

	for _, slot := range p.Moves {
		move := Move{Name: slot.Move.Name}

		for _, detail := range slot.VersionGroupDetails {
			if detail.MoveLearnMethod.Name == levelUp {
				level := detail.LevelLearnedAt
				move.LevelLearnedAt = &level
				move.LearnMethod = levelUp

				break
			}
		}

		if detail := slot.Move.Data; detail != nil {
			move.Power = detail.Power
			move.Accuracy = detail.Accuracy
			move.PP = detail.PP

			if detail.Type != nil {
				move.Type = detail.Type.Name
			}

			if detail.DamageClass != nil {
				move.DamageClass = detail.DamageClass.Name
			}

			for _, entry := range detail.FlavorTextEntries {
				if entry.Language.Name == english {
					text := cleanText(entry.FlavorText)
					move.Description = &text

					break
				}
			}
		}

		moves = append(moves, move)
	}

	slices.SortStableFunc(moves, func(a, b Move) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})

	return moves
}

func (p *rawPokemon) forms() []Form {
	forms := make([]Form, 0, len(p.Forms))

	for _, link := range p.Forms {
		form := Form{Name: link.Name}

		if detail := link.Data; detail != nil {
			form.IsDefault = &detail.IsDefault
			form.IsMega = &detail.IsMega
			form.IsBattleOnly = &detail.IsBattleOnly
			form.Sprites = &Sprites{FrontDefault: detail.Sprites.FrontDefault}
		}

		forms = append(forms, form)
	}

	return forms
}
