package catalog

import (
	"encoding/json"
	"testing"
)

func TestGet(t *testing.T) {
	tmpl, ok := Get("m2")
	if !ok {
		t.Fatal("m2 not found")
	}
	if tmpl.Name != "Dragão Branco de Olhos Azuis" {
		t.Errorf("unexpected name: %q", tmpl.Name)
	}
	if tmpl.Kind != Monster || tmpl.Atk != 3000 || tmpl.Def != 2500 || tmpl.Level != 8 {
		t.Errorf("unexpected stats: %+v", tmpl)
	}

	if _, ok := Get("nope"); ok {
		t.Error("unknown id must not resolve")
	}
}

func TestSpellsCarryEffects(t *testing.T) {
	want := map[string]Effect{
		"s1": EffectDestroyAllMonsters,
		"s3": EffectDamageOpponent,
		"s4": EffectGainLife,
	}
	for id, effect := range want {
		tmpl, ok := Get(id)
		if !ok {
			t.Fatalf("%s not found", id)
		}
		if tmpl.Kind != Spell {
			t.Errorf("%s: expected spell, got %v", id, tmpl.Kind)
		}
		if tmpl.Effect != effect {
			t.Errorf("%s: expected effect %q, got %q", id, effect, tmpl.Effect)
		}
	}
}

func TestCatalogUniqueness(t *testing.T) {
	ids := make(map[string]bool)
	names := make(map[string]bool)
	for _, tmpl := range All() {
		if ids[tmpl.CardID] {
			t.Errorf("duplicate card id %s", tmpl.CardID)
		}
		ids[tmpl.CardID] = true
		if names[tmpl.Name] {
			t.Errorf("duplicate card name %s", tmpl.Name)
		}
		names[tmpl.Name] = true

		if tmpl.Kind == Monster && tmpl.Effect != EffectNone {
			t.Errorf("%s: monsters carry no effect", tmpl.CardID)
		}
		if tmpl.Kind == Spell && tmpl.Effect == EffectNone {
			t.Errorf("%s: spell without an effect", tmpl.CardID)
		}
	}
}

func TestAllReturnsCopy(t *testing.T) {
	a := All()
	a[0].Name = "mutated"
	if b := All(); b[0].Name == "mutated" {
		t.Error("All exposed the underlying catalog")
	}
}

func TestKindJSONRoundTrip(t *testing.T) {
	for _, k := range []Kind{Monster, Spell} {
		data, err := json.Marshal(k)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var back Kind
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != k {
			t.Errorf("round trip changed %v to %v", k, back)
		}
	}
}
