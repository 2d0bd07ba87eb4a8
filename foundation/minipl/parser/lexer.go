// File: lexer.go
// Title: Mini-PL Lexical Analyzer
// Description: Converts Mini-PL source text into a stream of tokens on
//              demand. Skips whitespace, line comments and nested block
//              comments, decodes string escapes and tracks line and column
//              of every token start for error reporting.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial lexer implementation

package parser

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	mdwerrors "github.com/msto63/minipl/foundation/core/errors"
	"github.com/msto63/minipl/foundation/minipl/token"
)

const eof rune = -1

// Escape sequences accepted inside string literals
var escapes = map[rune]rune{
	'\\': '\\',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
}

// Lexer performs lexical analysis of Mini-PL source text.
// A Lexer is single-use: once EOF has been returned every further call
// returns EOF again, and once an error has been returned every further
// call returns the same error.
type Lexer struct {
	input  string
	pos    int  // byte offset of ch
	next   int  // byte offset after ch
	ch     rune // current rune, eof at end of input
	line   int
	column int
	err    error
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
	}
	l.readChar()
	return l
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() (token.Token, error) {
	if l.err != nil {
		return token.Token{}, l.err
	}

	if err := l.skipIgnored(); err != nil {
		return token.Token{}, l.fail(err)
	}

	start, line, column := l.pos, l.line, l.column
	tok := token.Token{Offset: start, Line: line, Column: column}

	switch {
	case l.ch == eof:
		tok.Type = token.EOF
		return tok, nil

	case unicode.IsLetter(l.ch):
		word := l.readWhile(func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) })
		tok.Lexeme = word
		tok.Type = token.Lookup(word)
		if b, ok := token.BoolLiteral(word); ok {
			tok.Value = b
		} else {
			tok.Value = word
		}
		return tok, nil

	case isDigit(l.ch):
		digits := l.readWhile(isDigit)
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return token.Token{}, l.fail(mdwerrors.Lexical("Integer literal out of range: "+digits, line, column))
		}
		tok.Type = token.Integer
		tok.Value = n
		tok.Lexeme = digits
		return tok, nil

	case l.ch == '"':
		text, err := l.readString(line, column)
		if err != nil {
			return token.Token{}, l.fail(err)
		}
		tok.Type = token.String
		tok.Value = text
		tok.Lexeme = l.input[start:l.pos]
		return tok, nil

	case l.ch == ':' && l.peekChar() == '=':
		l.readChar()
		l.readChar()
		tok.Type = token.Assign
		tok.Value = ":="
		tok.Lexeme = ":="
		return tok, nil
	}

	kind, ok := token.Punctuation(l.ch)
	if !ok {
		return token.Token{}, l.fail(mdwerrors.Lexical("Invalid character: "+string(l.ch), line, column))
	}
	tok.Type = kind
	tok.Value = l.ch
	tok.Lexeme = string(l.ch)
	l.readChar()
	return tok, nil
}

// Tokenize returns all remaining tokens including the final EOF token
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

// Tokenize is a convenience function that scans a whole source text
func Tokenize(input string) ([]token.Token, error) {
	return NewLexer(input).Tokenize()
}

func (l *Lexer) fail(err error) error {
	l.err = err
	return err
}

// readChar advances to the next rune. Line and column always describe ch.
func (l *Lexer) readChar() {
	if l.ch == eof {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.next >= len(l.input) {
		l.pos = len(l.input)
		l.ch = eof
		l.column++
		return
	}

	r, width := utf8.DecodeRuneInString(l.input[l.next:])
	l.pos = l.next
	l.next += width
	l.ch = r
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.next >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.next:])
	return r
}

func (l *Lexer) readWhile(accept func(rune) bool) string {
	start := l.pos
	for l.ch != eof && accept(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// skipIgnored skips whitespace and comments until the next token start
func (l *Lexer) skipIgnored() error {
	for {
		switch {
		case l.ch != eof && unicode.IsSpace(l.ch):
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != eof && l.ch != '\n' {
				l.readChar()
			}
			l.readChar()
		case l.ch == '/' && l.peekChar() == '*':
			if err := l.skipBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// skipBlockComment consumes a possibly nested /* ... */ comment
func (l *Lexer) skipBlockComment() error {
	line, column := l.line, l.column
	depth := 0
	for {
		switch {
		case l.ch == eof:
			return mdwerrors.Lexical("Missing comment closure", line, column)
		case l.ch == '/' && l.peekChar() == '*':
			depth++
			l.readChar()
			l.readChar()
		case l.ch == '*' && l.peekChar() == '/':
			depth--
			l.readChar()
			l.readChar()
			if depth == 0 {
				return nil
			}
		default:
			l.readChar()
		}
	}
}

// readString scans a string literal starting at the opening quote and
// returns its decoded text
func (l *Lexer) readString(line, column int) (string, error) {
	var sb strings.Builder
	l.readChar() // opening quote

	for l.ch != '"' {
		switch l.ch {
		case eof:
			return "", mdwerrors.Lexical("End of input while scanning a string literal", line, column)
		case '\\':
			escLine, escColumn := l.line, l.column
			decoded, ok := escapes[l.peekChar()]
			if !ok {
				seq := "\\"
				if p := l.peekChar(); p != eof {
					seq += string(p)
				}
				return "", mdwerrors.Lexical("Invalid escape sequence: "+seq, escLine, escColumn)
			}
			sb.WriteRune(decoded)
			l.readChar()
			l.readChar()
		default:
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}

	l.readChar() // closing quote
	return sb.String(), nil
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
