package template

import "sort"

// Kind names. They double as the default node names of the relationship
// graph and as fallback aliases.
const (
	KindComponent   = "component"
	KindBarrel      = "barrel"
	KindStyle       = "style"
	KindTranslation = "translation"
	KindTest        = "test"
)

var factories = map[string]Factory{
	KindComponent:   NewComponent,
	KindBarrel:      NewBarrel,
	KindStyle:       NewStyle,
	KindTranslation: NewTranslation,
	KindTest:        NewTestSuite,
}

// Lookup returns the factory registered for kind.
func Lookup(kind string) (Factory, bool) {
	f, ok := factories[kind]
	return f, ok
}

// Kinds returns the registered kind names, sorted.
func Kinds() []string {
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Defaults returns the built-in configuration of every kind. The caller owns
// the returned map.
func Defaults() map[string]Config {
	return map[string]Config{
		KindComponent: {
			Include:    true,
			Alias:      ModuleNamePlaceholder,
			Imports:    []string{`import * as React from "react";`},
			Extension:  "tsx",
			ExportType: ExportNamed,
		},
		KindBarrel: {
			Include:    true,
			Name:       "index",
			Extension:  "ts",
			ExportType: ExportAll,
		},
		KindStyle: {
			Include:         true,
			Name:            ModuleNamePlaceholder + ".module",
			Alias:           "styles",
			Extension:       "css",
			ExportType:      ExportDefault,
			ExportExtension: true,
		},
		KindTranslation: {
			Include:    true,
			Name:       ModuleNamePlaceholder + ".translations",
			Alias:      "translations",
			Extension:  "ts",
			ExportType: ExportNamed,
		},
		KindTest: {
			Include:    true,
			Name:       ModuleNamePlaceholder + ".test",
			Extension:  "tsx",
			ExportType: ExportDefault,
		},
	}
}
