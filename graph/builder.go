package graph

import (
	"github.com/teranos/fgen/template"
)

// Default returns the built-in graph: the barrel and the test re-export or
// exercise the component, which imports its style and translation.
//
//	barrel ─┐
//	        ├─> component ─┬─> style
//	test ───┘              └─> translation
func Default() Relationships {
	return Relationships{
		Entrypoints: []string{template.KindBarrel, template.KindTest},
		Nodes: map[string]Node{
			template.KindBarrel: {
				Name:     template.KindBarrel,
				Children: []string{template.KindComponent},
				Factory:  template.NewBarrel,
			},
			template.KindTest: {
				Name:     template.KindTest,
				Children: []string{template.KindComponent},
				Factory:  template.NewTestSuite,
			},
			template.KindComponent: {
				Name:     template.KindComponent,
				Children: []string{template.KindStyle, template.KindTranslation},
				Factory:  template.NewComponent,
				Open:     true,
			},
			template.KindStyle: {
				Name:    template.KindStyle,
				Factory: template.NewStyle,
			},
			template.KindTranslation: {
				Name:    template.KindTranslation,
				Factory: template.NewTranslation,
			},
		},
	}
}
