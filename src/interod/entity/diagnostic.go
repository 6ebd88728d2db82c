package entity

// Severity classifies a parsed compiler diagnostic.
type Severity string

const (
	// SeverityError includes deferred-type-error, deferred-out-of-scope and
	// typed-hole messages promoted from their warning form.
	SeverityError Severity = "error"
	// SeverityWarning is any non-promoted warning block.
	SeverityWarning Severity = "warning"
	// SeveritySplice is a Template Haskell splice expansion trace.
	SeveritySplice Severity = "splice"
)

// Diagnostic is one structured compiler message. Immutable once created.
type Diagnostic struct {
	Severity    Severity     `json:"severity"`
	File        string       `json:"file"`
	Line        int          `json:"line"`
	Column      int          `json:"column"`
	EndLine     int          `json:"endLine"`
	EndColumn   int          `json:"endColumn"`
	Message     string       `json:"message"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// SameAs reports whether two diagnostics are duplicates for collapse
// purposes: identical severity, location and message.
func (d Diagnostic) SameAs(o Diagnostic) bool {
	return d.Severity == o.Severity &&
		d.File == o.File &&
		d.Line == o.Line &&
		d.Column == o.Column &&
		d.EndLine == o.EndLine &&
		d.EndColumn == o.EndColumn &&
		d.Message == o.Message
}

// SuggestionKind tags the fix variant carried by a Suggestion.
type SuggestionKind string

const (
	// SuggestionAddImportItem adds an identifier to an existing import list.
	SuggestionAddImportItem SuggestionKind = "add-import-item"
	// SuggestionRemoveImportItem removes a redundant identifier from an import.
	SuggestionRemoveImportItem SuggestionKind = "remove-import-item"
	// SuggestionAddExtension enables a language extension pragma.
	SuggestionAddExtension SuggestionKind = "add-extension"
	// SuggestionAddGhcOption adds an OPTIONS_GHC pragma.
	SuggestionAddGhcOption SuggestionKind = "add-ghc-option"
	// SuggestionAddRecordFields fills in missing record fields.
	SuggestionAddRecordFields SuggestionKind = "add-missing-record-fields"
	// SuggestionFixTypo replaces a misspelled identifier.
	SuggestionFixTypo SuggestionKind = "fix-typo"
	// SuggestionAddTypeSignature inserts a top-level type signature.
	SuggestionAddTypeSignature SuggestionKind = "add-type-signature"
	// SuggestionRemoveConstraint drops a redundant class constraint.
	SuggestionRemoveConstraint SuggestionKind = "remove-redundant-constraint"
	// SuggestionEnablePackage exposes a hidden package to the build.
	SuggestionEnablePackage SuggestionKind = "enable-package"
)

// Suggestion is one machine-applicable fix extracted from a diagnostic
// message. The populated fields depend on Kind; Line/Column anchor the edit
// and default to the parent diagnostic's start position.
type Suggestion struct {
	Kind   SuggestionKind `json:"kind"`
	Line   int            `json:"line"`
	Column int            `json:"column"`
	// Module is the import's module name for import-item variants.
	Module string `json:"module,omitempty"`
	// Text is the identifier, extension, option, replacement or package name
	// the fix inserts or removes.
	Text string `json:"text,omitempty"`
	// Signature is the full signature for add-type-signature.
	Signature string `json:"signature,omitempty"`
	// Fields are the field names for add-missing-record-fields.
	Fields []string `json:"fields,omitempty"`
}
