package diagnostics

import (
	"regexp"
	"strings"

	"github.com/hstools/interod/src/interod/entity"
)

// A suggestionRule inspects a read-only diagnostic message and produces zero
// or more applicable fixes. Rules are evaluated in _suggestionRules order and
// the first rule that matches wins; later rules never see the message. The
// ordering is part of the contract and is pinned by tests.
type suggestionRule func(message string, line, column int) []entity.Suggestion

var _suggestionRules = []suggestionRule{
	addImportItemRule,
	removeImportItemRule,
	enablePackageRule,
	addExtensionRule,
	addGhcOptionRule,
	fixTypoRule,
	addTypeSignatureRule,
	removeConstraintRule,
	addRecordFieldsRule,
}

// ScanSuggestions extracts machine-applicable fixes from one diagnostic
// message. line and column anchor the fixes at the diagnostic's start.
func ScanSuggestions(message string, line, column int) []entity.Suggestion {
	for _, rule := range _suggestionRules {
		if suggestions := rule(message, line, column); len(suggestions) > 0 {
			return suggestions
		}
	}
	return nil
}

// quoted matches an identifier in the compiler's curly or backtick quoting.
const quoted = "[‘`]([^’'‘`]+)[’']"

var (
	_addImportItemPattern = regexp.MustCompile(
		`Perhaps you want to add ` + quoted + ` to the import list\s+in the import of\s+` + quoted)
	_removeImportItemPattern = regexp.MustCompile(
		`The import of ` + quoted + `\s+from module ` + quoted + ` is redundant`)
	_removeWholeImportPattern = regexp.MustCompile(
		`The( qualified)? import of ` + quoted + ` is redundant`)
	_enablePackagePattern = regexp.MustCompile(
		`It is a member of the hidden package ` + quoted)
	_addExtensionPattern = regexp.MustCompile(
		`Perhaps you intended to use (?:the ` + quoted + ` extension|(\w+))`)
	_addGhcOptionPattern = regexp.MustCompile(
		`Use (-[fWO][A-Za-z0-9-]+)`)
	_fixTypoLeadPattern = regexp.MustCompile(
		`Perhaps you meant(?: one of these:)?`)
	_quotedPattern = regexp.MustCompile(quoted)
	_addTypeSignaturePattern = regexp.MustCompile(
		`Top-level binding with no type signature:\s+((?s).+)`)
	_removeConstraintPattern = regexp.MustCompile(
		`Redundant constraints?: (?:\(([^)]+)\)|(.+))`)
	_addRecordFieldsPattern = regexp.MustCompile(
		`Fields of ` + quoted + ` not initialised:\s+((?s)[^•]+)`)
)

func addImportItemRule(message string, line, column int) []entity.Suggestion {
	m := _addImportItemPattern.FindStringSubmatch(message)
	if m == nil {
		return nil
	}
	return []entity.Suggestion{{
		Kind:   entity.SuggestionAddImportItem,
		Line:   line,
		Column: column,
		Module: m[2],
		Text:   m[1],
	}}
}

func removeImportItemRule(message string, line, column int) []entity.Suggestion {
	if m := _removeImportItemPattern.FindStringSubmatch(message); m != nil {
		var suggestions []entity.Suggestion
		// "The import of ‘a, b, c’ from module ‘M’ is redundant" lists every
		// unused item in one quote pair.
		for _, item := range strings.Split(m[1], ",") {
			suggestions = append(suggestions, entity.Suggestion{
				Kind:   entity.SuggestionRemoveImportItem,
				Line:   line,
				Column: column,
				Module: m[2],
				Text:   strings.TrimSpace(item),
			})
		}
		return suggestions
	}
	if m := _removeWholeImportPattern.FindStringSubmatch(message); m != nil {
		return []entity.Suggestion{{
			Kind:   entity.SuggestionRemoveImportItem,
			Line:   line,
			Column: column,
			Module: m[2],
		}}
	}
	return nil
}

func enablePackageRule(message string, line, column int) []entity.Suggestion {
	m := _enablePackagePattern.FindStringSubmatch(message)
	if m == nil {
		return nil
	}
	return []entity.Suggestion{{
		Kind:   entity.SuggestionEnablePackage,
		Line:   line,
		Column: column,
		Text:   m[1],
	}}
}

func addExtensionRule(message string, line, column int) []entity.Suggestion {
	m := _addExtensionPattern.FindStringSubmatch(message)
	if m == nil {
		return nil
	}
	extension := m[1]
	if extension == "" {
		extension = m[2]
	}
	return []entity.Suggestion{{
		Kind:   entity.SuggestionAddExtension,
		Line:   line,
		Column: column,
		Text:   extension,
	}}
}

func addGhcOptionRule(message string, line, column int) []entity.Suggestion {
	m := _addGhcOptionPattern.FindStringSubmatch(message)
	if m == nil {
		return nil
	}
	return []entity.Suggestion{{
		Kind:   entity.SuggestionAddGhcOption,
		Line:   line,
		Column: column,
		Text:   m[1],
	}}
}

func fixTypoRule(message string, line, column int) []entity.Suggestion {
	lead := _fixTypoLeadPattern.FindStringIndex(message)
	if lead == nil {
		return nil
	}
	// Every quoted identifier after the lead is one typo candidate.
	var suggestions []entity.Suggestion
	for _, m := range _quotedPattern.FindAllStringSubmatch(message[lead[1]:], -1) {
		suggestions = append(suggestions, entity.Suggestion{
			Kind:   entity.SuggestionFixTypo,
			Line:   line,
			Column: column,
			Text:   m[1],
		})
	}
	return suggestions
}

func addTypeSignatureRule(message string, line, column int) []entity.Suggestion {
	m := _addTypeSignaturePattern.FindStringSubmatch(message)
	if m == nil {
		return nil
	}
	signature := strings.Join(strings.Fields(m[1]), " ")
	return []entity.Suggestion{{
		Kind:      entity.SuggestionAddTypeSignature,
		Line:      line,
		Column:    column,
		Signature: signature,
	}}
}

func removeConstraintRule(message string, line, column int) []entity.Suggestion {
	m := _removeConstraintPattern.FindStringSubmatch(message)
	if m == nil {
		return nil
	}
	constraints := m[1]
	if constraints == "" {
		constraints = m[2]
	}
	constraints = strings.TrimSpace(strings.Split(constraints, "\n")[0])
	return []entity.Suggestion{{
		Kind:   entity.SuggestionRemoveConstraint,
		Line:   line,
		Column: column,
		Text:   constraints,
	}}
}

func addRecordFieldsRule(message string, line, column int) []entity.Suggestion {
	m := _addRecordFieldsPattern.FindStringSubmatch(message)
	if m == nil {
		return nil
	}
	var fields []string
	for _, field := range strings.FieldsFunc(m[2], func(r rune) bool {
		return r == ',' || r == '\n' || r == ' ' || r == '\t'
	}) {
		fields = append(fields, field)
	}
	if len(fields) == 0 {
		return nil
	}
	return []entity.Suggestion{{
		Kind:   entity.SuggestionAddRecordFields,
		Line:   line,
		Column: column,
		Fields: fields,
	}}
}
