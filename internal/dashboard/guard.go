package dashboard

import "sync/atomic"

// Token identifies one user-initiated operation. Tokens minted by the same
// Guard are strictly increasing.
type Token uint64

// Guard hands out operation tokens and tells whether a token is still the
// latest one. An operation holding a token that is no longer current has been
// superseded and must not touch shared state.
type Guard struct {
	current atomic.Uint64
}

// Mint returns a new token and makes it the current one.
func (g *Guard) Mint() Token {
	return Token(g.current.Add(1))
}

// IsCurrent reports whether t is the most recently minted token.
func (g *Guard) IsCurrent(t Token) bool {
	return Token(g.current.Load()) == t
}

// Current returns the most recently minted token, or 0 if none was minted.
func (g *Guard) Current() Token {
	return Token(g.current.Load())
}
