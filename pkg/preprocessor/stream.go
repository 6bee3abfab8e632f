// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package preprocessor

import "container/list"

// TokenStream is a mutable, iterator-stable sequence of tokens. It backs
// the directive processor's need to splice, erase, and insert at
// arbitrary positions while a cursor walks the stream, so it wraps a
// container/list doubly-linked list rather than a slice: positions stay
// valid across mutations elsewhere in the stream.
type TokenStream struct {
	l *list.List
}

// Pos identifies a position in a TokenStream. A nil Pos denotes the
// position just past the last token (the stream's End).
type Pos = *list.Element

// NewTokenStream returns an empty stream.
func NewTokenStream() *TokenStream {
	return &TokenStream{l: list.New()}
}

// NewTokenStreamFromSlice returns a stream containing a copy of toks, in
// order.
func NewTokenStreamFromSlice(toks []Token) *TokenStream {
	s := NewTokenStream()
	for _, t := range toks {
		s.PushBack(t)
	}
	return s
}

// TokAt returns the token at p. TokAt(nil) returns nil.
func TokAt(p Pos) *Token {
	if p == nil {
		return nil
	}
	return p.Value.(*Token)
}

// Len returns the number of tokens in s.
func (s *TokenStream) Len() int { return s.l.Len() }

// Front returns the position of the first token, or nil if s is empty.
func (s *TokenStream) Front() Pos { return s.l.Front() }

// End returns the sentinel position just past the last token.
func (s *TokenStream) End() Pos { return nil }

// ToSlice returns a copy of every token in s, in order.
func (s *TokenStream) ToSlice() []Token {
	out := make([]Token, 0, s.l.Len())
	for e := s.l.Front(); e != nil; e = e.Next() {
		out = append(out, *TokAt(e))
	}
	return out
}

// PushBack appends t to the end of s and returns its position.
func (s *TokenStream) PushBack(t Token) Pos {
	tok := t
	return s.l.PushBack(&tok)
}

// InsertBefore inserts t immediately before p (p may be nil, meaning the
// end of the stream) and returns the new token's position.
func (s *TokenStream) InsertBefore(p Pos, t Token) Pos {
	tok := t
	if p == nil {
		return s.l.PushBack(&tok)
	}
	return s.l.InsertBefore(&tok, p)
}

// InsertSliceBefore inserts toks, in order, immediately before p. It
// returns the position of the first inserted token, or p if toks is empty.
func (s *TokenStream) InsertSliceBefore(p Pos, toks []Token) Pos {
	first := p
	for i, t := range toks {
		e := s.InsertBefore(p, t)
		if i == 0 {
			first = e
		}
	}
	return first
}

// Erase removes the token at p and returns the position following it.
func (s *TokenStream) Erase(p Pos) Pos {
	next := p.Next()
	s.l.Remove(p)
	return next
}

// EraseRange removes every token in the half-open range [from, to) and
// returns to (the position just after the removed range).
func (s *TokenStream) EraseRange(from, to Pos) Pos {
	for e := from; e != to; {
		next := e.Next()
		s.l.Remove(e)
		e = next
	}
	return to
}

// SpliceBefore moves every token out of other and inserts it immediately
// before p, leaving other empty. Token identity (not just value) is
// preserved across the move.
func (s *TokenStream) SpliceBefore(p Pos, other *TokenStream) {
	for e := other.l.Front(); e != nil; {
		next := e.Next()
		other.l.Remove(e)
		if p == nil {
			s.l.PushBack(e.Value)
		} else {
			s.l.InsertBefore(e.Value, p)
		}
		e = next
	}
}
