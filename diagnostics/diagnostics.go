// Package diagnostics implements the four-case structured error taxonomy:
// LexerError, ParserError, RuntimeError, UnknownError. Every error exposes a
// Message, an optional Hint, and an optional Suggestion (a fuzzy match
// against the set of names valid at the error site).
package diagnostics

import (
	"fmt"

	"github.com/shapelang/shape/lexer"
)

// Diagnostic is implemented by every error type in this package.
type Diagnostic interface {
	error
	Range() lexer.Range
	Hint() string
	Suggestion() string
}

// LexerError wraps an invalid-number / invalid-color / unterminated-string /
// invalid-escape / unexpected-token lexical error.
type LexerError struct {
	KindName string
	Msg      string
	Rng      lexer.Range
}

func (e *LexerError) Error() string        { return e.Msg }
func (e *LexerError) Range() lexer.Range   { return e.Rng }
func (e *LexerError) Hint() string         { return "" }
func (e *LexerError) Suggestion() string   { return "" }

// ParserError is an unexpectedToken error, optionally carrying a
// human-readable "expected" description and an automatic fuzzy suggestion
// drawn from the infix-operator set when an identifier appears where an
// operator was expected.
type ParserError struct {
	Got         lexer.Token
	Expected    string // human description, empty if unknown
	SuggestText string
	Rng         lexer.Range
}

func (e *ParserError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("unexpected %s, expected %s", e.Got, e.Expected)
	}
	return fmt.Sprintf("unexpected %s", e.Got)
}

func (e *ParserError) Range() lexer.Range { return e.Rng }
func (e *ParserError) Hint() string {
	if e.Expected != "" {
		return "expected " + e.Expected
	}
	return ""
}
func (e *ParserError) Suggestion() string { return e.SuggestText }

// RuntimeErrorKind enumerates the evaluator's error categories.
type RuntimeErrorKind int

const (
	UnknownSymbol RuntimeErrorKind = iota
	UnknownMember
	UnknownFont
	TypeMismatch
	UnexpectedArgument
	MissingArgument
	UnusedValue
	AssertionFailure
	FileNotFound
	FileAccessRestricted
	FileTypeMismatch
	FileParsingError
	ImportErrorKind
	CircularImport
)

// RuntimeError is a runtime diagnostic with a kind-specific payload.
type RuntimeError struct {
	KindValue RuntimeErrorKind
	Msg       string
	HintText  string
	SuggestText string
	Rng       lexer.Range

	// ImportErrorKind payload
	Inner  error
	URL    string
	Source string
}

func (e *RuntimeError) Kind() RuntimeErrorKind { return e.KindValue }
func (e *RuntimeError) Error() string          { return e.Msg }
func (e *RuntimeError) Range() lexer.Range     { return e.Rng }
func (e *RuntimeError) Hint() string           { return e.HintText }
func (e *RuntimeError) Suggestion() string     { return e.SuggestText }
func (e *RuntimeError) Unwrap() error          { return e.Inner }

// UnderlyingError walks the ImportError wrap chain to the innermost cause.
func (e *RuntimeError) UnderlyingError() error {
	cur := error(e)
	for {
		re, ok := cur.(*RuntimeError)
		if !ok || re.KindValue != ImportErrorKind || re.Inner == nil {
			return cur
		}
		cur = re.Inner
	}
}

// ShapeFileURL climbs the ImportError chain to the innermost `.shape` file
// that contained the error, relative to the given URL if none is found.
func (e *RuntimeError) ShapeFileURL(relativeTo string) string {
	cur := e
	found := relativeTo
	for cur != nil {
		if cur.KindValue == ImportErrorKind && cur.URL != "" {
			found = cur.URL
		}
		inner, ok := cur.Inner.(*RuntimeError)
		if !ok {
			break
		}
		cur = inner
	}
	return found
}

// UnknownError is a catch-all for failures that do not fit the other three
// cases (e.g. a panic recovered at a host boundary).
type UnknownError struct {
	Msg string
	Rng lexer.Range
}

func (e *UnknownError) Error() string      { return e.Msg }
func (e *UnknownError) Range() lexer.Range { return e.Rng }
func (e *UnknownError) Hint() string       { return "" }
func (e *UnknownError) Suggestion() string { return "" }

// NewUnknownSymbol builds an UnknownSymbol RuntimeError with a fuzzy
// suggestion drawn from options.
func NewUnknownSymbol(name string, options []string, rng lexer.Range) *RuntimeError {
	return &RuntimeError{
		KindValue:   UnknownSymbol,
		Msg:         fmt.Sprintf("unknown symbol %q", name),
		HintText:    "no symbol with this name is defined in the current scope",
		SuggestText: Suggest(name, options),
		Rng:         rng,
	}
}

// NewUnknownMember builds an UnknownMember RuntimeError.
func NewUnknownMember(name, ofType string, options []string, rng lexer.Range) *RuntimeError {
	return &RuntimeError{
		KindValue:   UnknownMember,
		Msg:         fmt.Sprintf("value of type %s has no member %q", ofType, name),
		SuggestText: Suggest(name, options),
		Rng:         rng,
	}
}

// NewTypeMismatch builds a TypeMismatch RuntimeError.
func NewTypeMismatch(forName string, index int, expected, got string, rng lexer.Range) *RuntimeError {
	return &RuntimeError{
		KindValue: TypeMismatch,
		Msg:       fmt.Sprintf("%s expects %s for argument %d, got %s", forName, expected, index, got),
		Rng:       rng,
	}
}

// NewAssertionFailure builds an AssertionFailure RuntimeError.
func NewAssertionFailure(message string, rng lexer.Range) *RuntimeError {
	return &RuntimeError{KindValue: AssertionFailure, Msg: message, Rng: rng}
}

// NewImportError wraps inner into an ImportError carrying url and source.
func NewImportError(inner error, url, source string, rng lexer.Range) *RuntimeError {
	return &RuntimeError{
		KindValue: ImportErrorKind,
		Msg:       fmt.Sprintf("error importing %q: %v", url, inner),
		Inner:     inner,
		URL:       url,
		Source:    source,
		Rng:       rng,
	}
}

// NewCircularImport builds the circular-import RuntimeError.
func NewCircularImport(url string, rng lexer.Range) *RuntimeError {
	return &RuntimeError{
		KindValue: CircularImport,
		Msg:       fmt.Sprintf("circular import: %q is already being imported", url),
		URL:       url,
		Rng:       rng,
	}
}

// NewUnexpectedArgument builds an UnexpectedArgument RuntimeError: forName
// was given more arguments than it accepts (max).
func NewUnexpectedArgument(forName string, max int, rng lexer.Range) *RuntimeError {
	return &RuntimeError{
		KindValue: UnexpectedArgument,
		Msg:       fmt.Sprintf("%s takes at most %d argument(s)", forName, max),
		Rng:       rng,
	}
}

// NewMissingArgument builds a MissingArgument RuntimeError: forName needed
// an argument of expectedType at position index that was never supplied.
func NewMissingArgument(forName string, index int, expectedType string, rng lexer.Range) *RuntimeError {
	return &RuntimeError{
		KindValue: MissingArgument,
		Msg:       fmt.Sprintf("%s is missing argument %d (expected %s)", forName, index, expectedType),
		Rng:       rng,
	}
}

// NewUnusedValue builds an UnusedValue RuntimeError: a value of ofType was
// produced where the enclosing block's childTypes does not accept it.
func NewUnusedValue(ofType string, rng lexer.Range) *RuntimeError {
	return &RuntimeError{
		KindValue: UnusedValue,
		Msg:       fmt.Sprintf("value of type %s is not used here", ofType),
		HintText:  "this block does not accept children of this type",
		Rng:       rng,
	}
}

// NewUnknownFont builds an UnknownFont RuntimeError with a fuzzy suggestion
// drawn from options.
func NewUnknownFont(name string, options []string, rng lexer.Range) *RuntimeError {
	return &RuntimeError{
		KindValue:   UnknownFont,
		Msg:         fmt.Sprintf("unknown font %q", name),
		SuggestText: Suggest(name, options),
		Rng:         rng,
	}
}

// NewFileNotFound builds a FileNotFound RuntimeError for url.
func NewFileNotFound(url string, rng lexer.Range) *RuntimeError {
	return &RuntimeError{
		KindValue: FileNotFound,
		Msg:       fmt.Sprintf("file not found: %q", url),
		URL:       url,
		Rng:       rng,
	}
}

// NewFileAccessRestricted builds a FileAccessRestricted RuntimeError for url.
func NewFileAccessRestricted(url string, rng lexer.Range) *RuntimeError {
	return &RuntimeError{
		KindValue: FileAccessRestricted,
		Msg:       fmt.Sprintf("access to %q is restricted", url),
		HintText:  "the host has not granted permission to read this file",
		URL:       url,
		Rng:       rng,
	}
}

// NewFileTypeMismatch builds a FileTypeMismatch RuntimeError for url.
func NewFileTypeMismatch(url string, rng lexer.Range) *RuntimeError {
	return &RuntimeError{
		KindValue: FileTypeMismatch,
		Msg:       fmt.Sprintf("%q is not a recognised geometry file type", url),
		URL:       url,
		Rng:       rng,
	}
}

// NewFileParsingError builds a FileParsingError RuntimeError for url, with
// detail carrying the underlying parser/decoder message.
func NewFileParsingError(url, detail string, rng lexer.Range) *RuntimeError {
	return &RuntimeError{
		KindValue: FileParsingError,
		Msg:       fmt.Sprintf("error parsing %q: %s", url, detail),
		URL:       url,
		Rng:       rng,
	}
}
