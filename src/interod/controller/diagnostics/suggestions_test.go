package diagnostics

import (
	"testing"

	"github.com/hstools/interod/src/interod/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanSuggestions(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    []entity.Suggestion
	}{
		{
			name: "add import item",
			message: "Variable not in scope: fromMaybe :: Maybe a -> a\n" +
				"    Perhaps you want to add ‘fromMaybe’ to the import list\n" +
				"    in the import of ‘Data.Maybe’ (src/Lib.hs:3:1-25)",
			want: []entity.Suggestion{{
				Kind:   entity.SuggestionAddImportItem,
				Line:   7,
				Column: 3,
				Module: "Data.Maybe",
				Text:   "fromMaybe",
			}},
		},
		{
			name:    "remove import items",
			message: "The import of ‘catMaybes, mapMaybe’\n  from module ‘Data.Maybe’ is redundant",
			want: []entity.Suggestion{
				{Kind: entity.SuggestionRemoveImportItem, Line: 7, Column: 3, Module: "Data.Maybe", Text: "catMaybes"},
				{Kind: entity.SuggestionRemoveImportItem, Line: 7, Column: 3, Module: "Data.Maybe", Text: "mapMaybe"},
			},
		},
		{
			name:    "remove whole import",
			message: "The import of ‘Data.List’ is redundant\n  except perhaps to import instances",
			want: []entity.Suggestion{{
				Kind:   entity.SuggestionRemoveImportItem,
				Line:   7,
				Column: 3,
				Module: "Data.List",
			}},
		},
		{
			name:    "enable hidden package",
			message: "Could not load module ‘Data.Text’\n  It is a member of the hidden package ‘text-1.2.4.1’.",
			want: []entity.Suggestion{{
				Kind:   entity.SuggestionEnablePackage,
				Line:   7,
				Column: 3,
				Text:   "text-1.2.4.1",
			}},
		},
		{
			name:    "add extension bare",
			message: "Illegal lambda-case\n  Perhaps you intended to use LambdaCase",
			want: []entity.Suggestion{{
				Kind:   entity.SuggestionAddExtension,
				Line:   7,
				Column: 3,
				Text:   "LambdaCase",
			}},
		},
		{
			name:    "add extension quoted",
			message: "Illegal underscores in integer literals\n  Perhaps you intended to use the ‘NumericUnderscores’ extension",
			want: []entity.Suggestion{{
				Kind:   entity.SuggestionAddExtension,
				Line:   7,
				Column: 3,
				Text:   "NumericUnderscores",
			}},
		},
		{
			name:    "add ghc option",
			message: "Pattern match checker exceeded (2000000) iterations\n  Use -fmax-pmcheck-iterations to set the maximum",
			want: []entity.Suggestion{{
				Kind:   entity.SuggestionAddGhcOption,
				Line:   7,
				Column: 3,
				Text:   "-fmax-pmcheck-iterations",
			}},
		},
		{
			name:    "fix typo single",
			message: "Variable not in scope: fodlr\n  Perhaps you meant ‘foldr’ (imported from Prelude)",
			want: []entity.Suggestion{{
				Kind:   entity.SuggestionFixTypo,
				Line:   7,
				Column: 3,
				Text:   "foldr",
			}},
		},
		{
			name: "fix typo candidates",
			message: "Variable not in scope: mapp\n  Perhaps you meant one of these:\n" +
				"    ‘map’ (imported from Prelude), ‘mappend’ (imported from Prelude)",
			want: []entity.Suggestion{
				{Kind: entity.SuggestionFixTypo, Line: 7, Column: 3, Text: "map"},
				{Kind: entity.SuggestionFixTypo, Line: 7, Column: 3, Text: "mappend"},
			},
		},
		{
			name:    "add type signature",
			message: "Top-level binding with no type signature:\n  process :: Int -> Maybe Int",
			want: []entity.Suggestion{{
				Kind:      entity.SuggestionAddTypeSignature,
				Line:      7,
				Column:    3,
				Signature: "process :: Int -> Maybe Int",
			}},
		},
		{
			name:    "remove redundant constraint",
			message: "Redundant constraint: Eq a\n  In the type signature for: member :: Eq a => a -> [a] -> Bool",
			want: []entity.Suggestion{{
				Kind:   entity.SuggestionRemoveConstraint,
				Line:   7,
				Column: 3,
				Text:   "Eq a",
			}},
		},
		{
			name:    "remove redundant constraints parenthesized",
			message: "Redundant constraints: (Eq a, Ord a)",
			want: []entity.Suggestion{{
				Kind:   entity.SuggestionRemoveConstraint,
				Line:   7,
				Column: 3,
				Text:   "Eq a, Ord a",
			}},
		},
		{
			name:    "add missing record fields",
			message: "Fields of ‘Config’ not initialised:\n  host, port",
			want: []entity.Suggestion{{
				Kind:   entity.SuggestionAddRecordFields,
				Line:   7,
				Column: 3,
				Fields: []string{"host", "port"},
			}},
		},
		{
			name:    "no match",
			message: "Couldn't match expected type ‘Int’ with actual type ‘[Char]’",
			want:    nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScanSuggestions(tt.message, 7, 3))
		})
	}
}

// Precedence is part of the contract: when two rules could both match, the
// earlier rule in _suggestionRules wins and the later one never runs.
func TestScanSuggestionsPrecedence(t *testing.T) {
	t.Run("remove import beats fix typo", func(t *testing.T) {
		message := "The import of ‘fodlr’ from module ‘Data.List’ is redundant\n" +
			"  Perhaps you meant ‘foldr’"
		got := ScanSuggestions(message, 1, 1)
		require.NotEmpty(t, got)
		for _, s := range got {
			assert.Equal(t, entity.SuggestionRemoveImportItem, s.Kind)
		}
	})

	t.Run("add import beats fix typo", func(t *testing.T) {
		message := "Perhaps you want to add ‘fromMaybe’ to the import list\n" +
			"  in the import of ‘Data.Maybe’\n" +
			"  Perhaps you meant ‘mapMaybe’"
		got := ScanSuggestions(message, 1, 1)
		require.Len(t, got, 1)
		assert.Equal(t, entity.SuggestionAddImportItem, got[0].Kind)
	})

	t.Run("enable package beats extension", func(t *testing.T) {
		message := "It is a member of the hidden package ‘text-1.2.4.1’.\n" +
			"  Perhaps you intended to use PackageImports"
		got := ScanSuggestions(message, 1, 1)
		require.Len(t, got, 1)
		assert.Equal(t, entity.SuggestionEnablePackage, got[0].Kind)
	})
}
