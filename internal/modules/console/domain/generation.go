package domain

import "strconv"

const listTokenKey = "list"

// Token identifies one in-flight request. A response is applied only while its token is
// still the latest one issued for the same key and no reset happened in between.
type Token struct {
	key        string
	epoch      uint64
	generation uint64
}

// Generation returns the monotonically increasing sequence number of the token.
func (t Token) Generation() uint64 { return t.generation }

func (t Token) IsZero() bool { return t.generation == 0 }

type tokenLedger struct {
	epoch    uint64
	sequence uint64
	latest   map[string]uint64
}

func newTokenLedger() *tokenLedger {
	return &tokenLedger{latest: map[string]uint64{}}
}

func (l *tokenLedger) begin(key string) Token {
	l.sequence++
	l.latest[key] = l.sequence
	return Token{key: key, epoch: l.epoch, generation: l.sequence}
}

// beginUnique issues a token that no later request can supersede, used for creates.
func (l *tokenLedger) beginUnique(prefix string) Token {
	return l.begin(prefix + "#" + strconv.FormatUint(l.sequence+1, 10))
}

func (l *tokenLedger) current(t Token) bool {
	if t.generation == 0 || t.epoch != l.epoch {
		return false
	}
	return l.latest[t.key] == t.generation
}

func (l *tokenLedger) finish(t Token) {
	if l.current(t) {
		delete(l.latest, t.key)
	}
}

// reset invalidates every outstanding token.
func (l *tokenLedger) reset() {
	l.epoch++
	l.latest = map[string]uint64{}
}

func mutationKey(id string) string { return "entity:" + id }
func detailKey(id string) string { return "detail:" + id }
