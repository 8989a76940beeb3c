package utils

import (
	"reflect"
	"strings"
	"testing"
)

func TestComputeTagsScenario(t *testing.T) {
	in := TagInput{
		Phone:   "+52 55 1234 5678",
		Message: "Busco un vestido talla M para un evento",
		Products: []TagProduct{
			{Name: "Vestido de gala", Quantity: 10},
		},
	}

	got := ComputeTags(in, nil)
	want := []string{"con-productos", "cantidad-alta", "vestido", "consulta-talla", "con-telefono"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ComputeTags = %v, want %v", got, want)
	}
}

func TestComputeTagsDeterministic(t *testing.T) {
	in := TagInput{
		Phone:   "555-0101",
		Message: "Necesito precio y envío de 3 camisas, pantalón incluido",
		Products: []TagProduct{
			{Name: "Camisa polo", Quantity: 3},
		},
	}

	first := ComputeTags(in, nil)
	for i := 0; i < 50; i++ {
		if got := ComputeTags(in, nil); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: ComputeTags = %v, want %v", i, got, first)
		}
	}
}

func TestComputeTagsEmptyInput(t *testing.T) {
	if got := ComputeTags(TagInput{}, nil); len(got) != 0 {
		t.Fatalf("ComputeTags on empty input = %v, want none", got)
	}
}

func TestComputeTagsCaseInsensitive(t *testing.T) {
	in := TagInput{Message: "QUIERO UN BLAZER"}
	got := ComputeTags(in, nil)
	if !reflect.DeepEqual(got, []string{"blazer"}) {
		t.Fatalf("ComputeTags = %v, want [blazer]", got)
	}
}

func TestComputeTagsLongMessage(t *testing.T) {
	in := TagInput{Message: strings.Repeat("ñ", 101)}
	got := ComputeTags(in, nil)
	if !reflect.DeepEqual(got, []string{"mensaje-detallado"}) {
		t.Fatalf("ComputeTags = %v, want [mensaje-detallado]", got)
	}

	// Exactly 100 runes does not qualify
	in.Message = strings.Repeat("ñ", 100)
	if got := ComputeTags(in, nil); len(got) != 0 {
		t.Fatalf("ComputeTags on 100-rune message = %v, want none", got)
	}
}

func TestComputeTagsQuantityBoundary(t *testing.T) {
	in := TagInput{Products: []TagProduct{{Name: "Taza", Quantity: 5}}}
	got := ComputeTags(in, nil)
	if !reflect.DeepEqual(got, []string{"con-productos"}) {
		t.Fatalf("ComputeTags at quantity 5 = %v, want [con-productos]", got)
	}

	in.Products[0].Quantity = 6
	got = ComputeTags(in, nil)
	if !reflect.DeepEqual(got, []string{"con-productos", "cantidad-alta"}) {
		t.Fatalf("ComputeTags at quantity 6 = %v, want [con-productos cantidad-alta]", got)
	}
}

func TestComputeTagsCustomRulesDedup(t *testing.T) {
	rules := []TagRule{
		{Name: "a", Tag: "same", Predicate: func(TagInput, string) bool { return true }},
		{Name: "b", Tag: "same", Predicate: func(TagInput, string) bool { return true }},
		{Name: "c", Tag: "other", Predicate: func(TagInput, string) bool { return true }},
	}
	got := ComputeTags(TagInput{}, rules)
	if !reflect.DeepEqual(got, []string{"same", "other"}) {
		t.Fatalf("ComputeTags with duplicate tags = %v, want [same other]", got)
	}
}
