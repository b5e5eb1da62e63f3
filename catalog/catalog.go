package catalog

import (
	"encoding/json"
	"fmt"
)

// Kind distinguishes monster cards from spell cards.
type Kind int

const (
	Monster Kind = iota
	Spell
)

// String returns the protocol string for a Kind.
func (k Kind) String() string {
	switch k {
	case Monster:
		return "MONSTER"
	case Spell:
		return "SPELL"
	default:
		return "unknown"
	}
}

// MarshalJSON writes the Kind as its protocol string.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON reads a Kind from its protocol string.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "MONSTER":
		*k = Monster
	case "SPELL":
		*k = Spell
	default:
		return fmt.Errorf("unknown card kind %q", s)
	}
	return nil
}

// Effect identifies what a spell card does when activated. Effects are
// resolved by id, not by card name, so renaming a card never changes its
// behavior.
type Effect string

const (
	EffectNone               Effect = ""
	EffectDestroyAllMonsters Effect = "destroy_all_monsters"
	EffectDamageOpponent     Effect = "damage_opponent"
	EffectGainLife           Effect = "gain_life"
)

// Template is an immutable card definition. Monster stats (Atk, Def, Level)
// are zero for spells; Effect is empty for monsters.
type Template struct {
	CardID string `json:"cardId"`
	Name   string `json:"name"`
	Kind   Kind   `json:"kind"`
	Atk    int    `json:"atk,omitempty"`
	Def    int    `json:"def,omitempty"`
	Level  int    `json:"level,omitempty"`
	Text   string `json:"text"`
	Effect Effect `json:"effect,omitempty"`
}

// templates is the full card table. Card ids and names must be unique.
var templates = []Template{
	{CardID: "m1", Name: "Mago Negro", Kind: Monster, Atk: 2500, Def: 2100, Level: 7, Text: "O mago supremo em termos de ataque e defesa."},
	{CardID: "m2", Name: "Dragão Branco de Olhos Azuis", Kind: Monster, Atk: 3000, Def: 2500, Level: 8, Text: "Este dragão lendário é um poderoso motor de destruição."},
	{CardID: "m3", Name: "Guardião Celta", Kind: Monster, Atk: 1400, Def: 1200, Level: 4, Text: "Um elfo que aprendeu a empunhar uma espada, ele confunde os inimigos com ataques rápidos como um raio."},
	{CardID: "m4", Name: "Elfa Mística", Kind: Monster, Atk: 800, Def: 2000, Level: 4, Text: "Uma elfa delicada que não tem muito ataque, mas tem uma defesa incrível apoiada por poder místico."},
	{CardID: "m5", Name: "Caveira Invocada", Kind: Monster, Atk: 2500, Def: 1200, Level: 6, Text: "Um demônio com poderes das trevas para confundir o inimigo."},
	{CardID: "m6", Name: "Kuriboh", Kind: Monster, Atk: 300, Def: 200, Level: 1, Text: "Esta carta é fraca, mas pode ser útil."},
	{CardID: "m7", Name: "Soldado Gigante de Pedra", Kind: Monster, Atk: 1300, Def: 2000, Level: 3, Text: "Um guerreiro gigante feito de pedra."},
	{CardID: "m8", Name: "Elfos Gêmeos", Kind: Monster, Atk: 1900, Def: 900, Level: 4, Text: "Gêmeos elfos que alternam seus ataques."},
	{CardID: "m9", Name: "La Jinn", Kind: Monster, Atk: 1800, Def: 1000, Level: 4, Text: "Um gênio da lâmpada que está à disposição de seu mestre."},
	{CardID: "s1", Name: "Buraco Negro", Kind: Spell, Text: "Destrua todos os monstros no campo.", Effect: EffectDestroyAllMonsters},
	{CardID: "s3", Name: "Faíscas", Kind: Spell, Text: "Cause 200 de dano ao seu oponente.", Effect: EffectDamageOpponent},
	{CardID: "s4", Name: "Dian Keto", Kind: Spell, Text: "Aumente seus PV em 1000.", Effect: EffectGainLife},
}

var byID = func() map[string]Template {
	m := make(map[string]Template, len(templates))
	for _, t := range templates {
		m[t.CardID] = t
	}
	return m
}()

// Get returns the template for the given card id.
func Get(cardID string) (Template, bool) {
	t, ok := byID[cardID]
	return t, ok
}

// All returns every template in table order. The returned slice is a copy;
// callers may not mutate the catalog.
func All() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// Size returns the number of templates in the catalog.
func Size() int {
	return len(templates)
}
