// Vizx
// Copyright (C) 2013-2024+ James Shubin and the project contributors
// Written by James Shubin <james@shubin.ca> and the project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package parser builds the abstract syntax tree of the diagram language from a
// list of tokens. It computes every parse of the input, so that an ambiguous
// input can be reported instead of silently resolved.
package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/purpleidea/vizx/lang/ast"
	"github.com/purpleidea/vizx/lang/interfaces"
	"github.com/purpleidea/vizx/lang/lexer"
	"github.com/purpleidea/vizx/util"
	"github.com/purpleidea/vizx/util/errwrap"
)

// MaxCandidates is the most partial parses that are kept for a single rule at
// a single position. Only pathological inputs get near it.
const MaxCandidates = 512

// MaxListed is the most parses that an ambiguity warning prints.
const MaxListed = 3

// Result is the output of the parser.
type Result struct {
	// Root is the first full parse in declaration order.
	Root ast.Node

	// Candidates is the number of distinct full parses that were found.
	Candidates int

	// Warnings are non fatal problems, such as an ambiguous input.
	Warnings []error
}

// LexParse runs the lexer and then the parser on the input.
func LexParse(input string) (*Result, error) {
	tokens, err := lexer.Lex(input)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// Parse returns the tree for a list of tokens which ends with an EOF token. If
// more than one distinct tree matches, the first is returned along with a
// warning that wraps interfaces.ErrParseAmbiguous.
func Parse(tokens []*lexer.Token) (*Result, error) {
	p, err := newParser(tokens)
	if err != nil {
		return nil, err
	}

	full := []ast.Node{}
	seen := make(map[int]struct{})
	for _, r := range p.diagram(0) {
		if r.next != p.eof {
			p.need(r.next, interfaces.EOF)
			continue
		}
		id := p.ids.node(r.val)
		if _, exists := seen[id]; exists {
			continue
		}
		seen[id] = struct{}{}
		full = append(full, r.val)
	}
	if len(full) == 0 {
		return nil, p.err()
	}

	result := &Result{
		Root:       full[0],
		Candidates: len(full),
	}
	if len(full) > 1 {
		result.Warnings = append(result.Warnings, ambiguous(full))
	}
	return result, nil
}

// ambiguous builds the warning for more than one full parse. Only the first
// MaxListed parses are printed.
func ambiguous(full []ast.Node) error {
	shown := []string{}
	for _, x := range full {
		if len(shown) == MaxListed {
			break
		}
		shown = append(shown, x.String())
	}
	s := strings.Join(shown, " | ")
	if more := len(full) - len(shown); more > 0 {
		s += fmt.Sprintf(" and %d more", more)
	}
	return errwrap.Wrapf(interfaces.ErrParseAmbiguous, "%d parses: %s", len(full), s)
}

// ParseNum parses a list of tokens which holds a single numeric expression.
func ParseNum(tokens []*lexer.Token) (ast.Num, error) {
	p, err := newParser(tokens)
	if err != nil {
		return nil, err
	}
	for _, r := range p.number(0) {
		if r.next == p.eof {
			return r.val, nil // longest first, so this is the greedy one
		}
		p.need(r.next, interfaces.EOF)
	}
	return nil, p.err()
}

// result is one way of parsing a rule starting at some position. The next
// field is the index of the first token that was not consumed.
type result[T any] struct {
	val  T
	next int
}

type memoKey struct {
	rule rule
	pos  int
}

// rule identifies a grammar rule in the memo tables.
type rule int

const (
	ruleNumber rule = iota
	ruleNumAdd
	ruleNumMul
	ruleNumAtom
	ruleRealNum
	ruleDiagram
	ruleRelation
	ruleChain
	ruleUnit
	ruleBaseTerm
	ruleNumBare
	ruleNumParen
	ruleNodeBare
	ruleNodeParen
)

// parser holds the state of a single parse. It is not reused.
type parser struct {
	tokens []*lexer.Token
	eof    int // index of the EOF token

	nums  map[memoKey][]result[ast.Num]
	nodes map[memoKey][]result[ast.Node]
	lists map[memoKey][]result[[]*arg]
	ids   *interner

	// furthest is the largest position where something failed to match.
	furthest int
	needs    []string // rules or tokens that were required at furthest
	tried    []string // tokens that some alternative tried at furthest
}

func newParser(tokens []*lexer.Token) (*parser, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != lexer.KindEOF {
		return nil, fmt.Errorf("token list must end with an EOF token")
	}
	return &parser{
		tokens: tokens,
		eof:    len(tokens) - 1,
		nums:   make(map[memoKey][]result[ast.Num]),
		nodes:  make(map[memoKey][]result[ast.Node]),
		lists:  make(map[memoKey][]result[[]*arg]),
		ids:    newInterner(),
	}, nil
}

// move advances the furthest failure position if pos is beyond it.
func (obj *parser) move(pos int) bool {
	pos = obj.clamp(pos)
	if pos < obj.furthest {
		return false
	}
	if pos > obj.furthest {
		obj.furthest = pos
		obj.needs = []string{}
		obj.tried = []string{}
	}
	return true
}

// need records that the named rule or token was required at pos, after some
// input had already been consumed by the enclosing rule.
func (obj *parser) need(pos int, what string) {
	if obj.move(pos) && !util.StrInList(what, obj.needs) {
		obj.needs = append(obj.needs, what)
	}
}

// is returns true if the token at pos is of the given kind, and otherwise notes
// that it was tried.
func (obj *parser) is(pos int, kind lexer.Kind) bool {
	pos = obj.clamp(pos)
	if obj.tokens[pos].Kind == kind {
		return true
	}
	if s := kind.String(); obj.move(pos) && !util.StrInList(s, obj.tried) {
		obj.tried = append(obj.tried, s)
	}
	return false
}

// kind returns the kind of the token at pos.
func (obj *parser) kind(pos int) lexer.Kind {
	return obj.tokens[obj.clamp(pos)].Kind
}

// text returns the text of the token at pos.
func (obj *parser) text(pos int) string {
	return obj.tokens[obj.clamp(pos)].Text
}

// clamp keeps lookahead past the end on the EOF token.
func (obj *parser) clamp(pos int) int {
	if pos > obj.eof {
		return obj.eof
	}
	return pos
}

// err builds the error for the furthest failure.
func (obj *parser) err() error {
	tok := obj.tokens[obj.furthest]
	line, col := tok.Pos()
	start, _ := tok.Offsets()
	str := tok.Text
	if tok.Kind == lexer.KindEOF {
		str = interfaces.EOF
	}

	expected := obj.needs
	if len(expected) == 0 {
		expected = append([]string{}, obj.tried...)
		sort.Strings(expected)
	}
	e := interfaces.ErrParseError
	if len(expected) == 1 && expected[0] == interfaces.EOF {
		e = interfaces.ErrParseExpectedEOF
	}
	return &interfaces.LexParseErr{
		Err:      e,
		Str:      str,
		Row:      line,
		Col:      col,
		Offset:   start,
		Expected: expected,
	}
}

// memoNum runs fn once per rule and position.
func (obj *parser) memoNum(r rule, pos int, fn func(int) []result[ast.Num]) []result[ast.Num] {
	key := memoKey{rule: r, pos: pos}
	if res, exists := obj.nums[key]; exists {
		return res
	}
	res := dedup(fn(pos), obj.ids.num)
	obj.nums[key] = res
	return res
}

// memoNode runs fn once per rule and position.
func (obj *parser) memoNode(r rule, pos int, fn func(int) []result[ast.Node]) []result[ast.Node] {
	key := memoKey{rule: r, pos: pos}
	if res, exists := obj.nodes[key]; exists {
		return res
	}
	res := dedup(fn(pos), obj.ids.node)
	obj.nodes[key] = res
	return res
}

// memoArgs runs fn once per rule and position. Argument lists are not
// deduplicated, but they are cut at MaxCandidates.
func (obj *parser) memoArgs(r rule, pos int, fn func(int) []result[[]*arg]) []result[[]*arg] {
	key := memoKey{rule: r, pos: pos}
	if res, exists := obj.lists[key]; exists {
		return res
	}
	res := fn(pos)
	if len(res) > MaxCandidates {
		res = res[:MaxCandidates]
	}
	obj.lists[key] = res
	return res
}

// dedup removes the results that end at the same place and have the same
// structure as an earlier one. It also enforces MaxCandidates.
func dedup[T any](in []result[T], id func(T) int) []result[T] {
	type seenKey struct {
		id   int
		next int
	}
	seen := make(map[seenKey]struct{})
	out := []result[T]{}
	for _, r := range in {
		key := seenKey{id: id(r.val), next: r.next}
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
		if len(out) == MaxCandidates {
			break
		}
	}
	return out
}

// lrec expands every seed with as many applications of step as possible. Each
// application wraps the accumulated left side. Every prefix is kept, and longer
// ones come first.
func lrec[T any](seeds []result[T], step func(result[T]) []result[T]) []result[T] {
	out := []result[T]{}
	var expand func(r result[T])
	expand = func(r result[T]) {
		for _, x := range step(r) {
			expand(x)
		}
		out = append(out, r)
	}
	for _, seed := range seeds {
		expand(seed)
	}
	return out
}
