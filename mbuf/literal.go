package mbuf

import "strconv"

const (
	LiteralGet  Literal = 0 // retrieval verb "get "
	LiteralGets Literal = 1 // cas retrieval verb "gets "
	LiteralCRLF Literal = 2 // protocol line terminator
	LiteralEnd  Literal = 3 // retrieval response trailer
	LiteralNone Literal = 4 // injects nothing
)

// Literal names one of the fixed protocol strings a split may inject at the
// cut point. The table is closed: codes map to immutable bytes built once at
// startup, looked up and never formatted.
type Literal uint8

var literals = [...][]byte{
	LiteralGet:  []byte("get "),
	LiteralGets: []byte("gets "),
	LiteralCRLF: []byte("\r\n"),
	LiteralEnd:  []byte("END\r\n"),
	LiteralNone: {},
}

var maxLiteralLen = func() int {
	n := 0
	for _, lit := range literals {
		if len(lit) > n {
			n = len(lit)
		}
	}
	return n
}()

// Bytes returns the literal's protocol bytes. The slice is shared; callers
// must treat it as read-only.
func (l Literal) Bytes() []byte {
	if int(l) >= len(literals) {
		panic(UnknownLiteralError{Literal: l})
	}
	return literals[l]
}

func (l Literal) String() string {
	switch l {
	case LiteralGet:
		return "literal get"
	case LiteralGets:
		return "literal gets"
	case LiteralCRLF:
		return "literal crlf"
	case LiteralEnd:
		return "literal end"
	case LiteralNone:
		return "literal none"
	default:
		return "literal no" + strconv.Itoa(int(l))
	}
}

// MaxLiteralLen reports the longest entry in the table. Pool geometry must
// leave at least this much room in the data region.
func MaxLiteralLen() int { return maxLiteralLen }
