package utils

import (
	"strings"
	"unicode/utf8"
)

// TagInput carries the inquiry fields the tagging rules look at
type TagInput struct {
	Phone    string
	Message  string
	Products []TagProduct
}

// TagProduct is one requested product line on an inquiry
type TagProduct struct {
	Name     string
	Quantity int
}

// TagRule pairs a predicate with the tag it contributes. Rules run in order
// against the normalized input; each one fires at most once.
type TagRule struct {
	Name      string
	Tag       string
	Predicate func(in TagInput, message string) bool
}

// messageContains builds a predicate matching a fixed lower-case substring of
// the message. Containment is deliberate: a keyword embedded inside another
// word still triggers the tag.
func messageContains(keyword string) func(TagInput, string) bool {
	return func(_ TagInput, message string) bool {
		return strings.Contains(message, keyword)
	}
}

// DefaultTagRules is the rule list applied to every new inquiry. The keyword
// set mirrors the product categories and intents the sales team segments by.
var DefaultTagRules = []TagRule{
	{
		Name: "has-products",
		Tag:  "con-productos",
		Predicate: func(in TagInput, _ string) bool {
			return len(in.Products) > 0
		},
	},
	{
		Name: "high-quantity",
		Tag:  "cantidad-alta",
		Predicate: func(in TagInput, _ string) bool {
			for _, p := range in.Products {
				if p.Quantity > 5 {
					return true
				}
			}
			return false
		},
	},
	{Name: "kw-vestido", Tag: "vestido", Predicate: messageContains("vestido")},
	{Name: "kw-blazer", Tag: "blazer", Predicate: messageContains("blazer")},
	{Name: "kw-camisa", Tag: "camisa", Predicate: messageContains("camisa")},
	{Name: "kw-pantalon", Tag: "pantalon", Predicate: messageContains("pantalón")},
	{Name: "kw-falda", Tag: "falda", Predicate: messageContains("falda")},
	{Name: "kw-talla", Tag: "consulta-talla", Predicate: messageContains("talla")},
	{Name: "kw-precio", Tag: "consulta-precio", Predicate: messageContains("precio")},
	{Name: "kw-envio", Tag: "consulta-envio", Predicate: messageContains("envío")},
	{
		Name: "has-phone",
		Tag:  "con-telefono",
		Predicate: func(in TagInput, _ string) bool {
			return strings.TrimSpace(in.Phone) != ""
		},
	},
	{
		Name: "long-message",
		Tag:  "mensaje-detallado",
		Predicate: func(in TagInput, _ string) bool {
			return utf8.RuneCountInString(in.Message) > 100
		},
	},
}

// ComputeTags evaluates the rule list against in and returns the matching
// tags in rule order. Pure and deterministic; tags are applied exactly once
// at inquiry creation and never recomputed on edit.
func ComputeTags(in TagInput, rules []TagRule) []string {
	if rules == nil {
		rules = DefaultTagRules
	}

	message := strings.ToLower(in.Message)

	var tags []string
	seen := make(map[string]struct{})
	for _, rule := range rules {
		if rule.Predicate == nil || !rule.Predicate(in, message) {
			continue
		}
		if _, dup := seen[rule.Tag]; dup {
			continue
		}
		seen[rule.Tag] = struct{}{}
		tags = append(tags, rule.Tag)
	}
	return tags
}
