package chatbot

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
)

const (
	phraseWeight = 3
	wordWeight   = 1
	clarifyBelow = 5
)

// Entry is one intent. A reply is chosen at random from Responses.
type Entry struct {
	Label       string
	Patterns    []string
	Responses   []string
	Suggestions []string
}

// Reply is the responder's answer to one message.
type Reply struct {
	Reply       string
	MatchFound  bool
	Score       int
	Suggestions []string
}

type compiledPattern struct {
	phrase string
	words  []*regexp.Regexp
}

type compiledEntry struct {
	Entry
	patterns []compiledPattern
}

// Responder scores messages against a static knowledge base.
type Responder struct {
	entries  []compiledEntry
	fallback string
	pick     func(n int) int
}

type Option func(*Responder)

// WithPicker replaces the random response picker.
func WithPicker(pick func(n int) int) Option {
	return func(r *Responder) { r.pick = pick }
}

func WithFallback(reply string) Option {
	return func(r *Responder) { r.fallback = reply }
}

func NewResponder(kb []Entry, opts ...Option) *Responder {
	r := &Responder{
		fallback: FallbackReply,
		pick:     rand.IntN,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.entries = make([]compiledEntry, 0, len(kb))
	for _, e := range kb {
		ce := compiledEntry{Entry: e}
		for _, p := range e.Patterns {
			p = strings.ToLower(p)
			cp := compiledPattern{phrase: p}
			for _, w := range strings.Split(p, " ") {
				if w == "" {
					continue
				}
				cp.words = append(cp.words, regexp.MustCompile(`\b`+regexp.QuoteMeta(w)+`\b`))
			}
			ce.patterns = append(ce.patterns, cp)
		}
		r.entries = append(r.entries, ce)
	}
	return r
}

// score sums +3 per whole pattern contained in msg and +1 per pattern word
// found on word boundaries.
func (e *compiledEntry) score(msg string) int {
	total := 0
	for _, p := range e.patterns {
		if strings.Contains(msg, p.phrase) {
			total += phraseWeight
		}
		for _, w := range p.words {
			if w.MatchString(msg) {
				total += wordWeight
			}
		}
	}
	return total
}

// Respond picks the best scoring entry. Several entries sharing a low top
// score produce a clarifying question instead.
func (r *Responder) Respond(message string) Reply {
	msg := strings.ToLower(message)

	var best *compiledEntry
	maxScore := 0
	var tied []*compiledEntry

	for i := range r.entries {
		e := &r.entries[i]
		s := e.score(msg)
		switch {
		case s > maxScore:
			maxScore = s
			best = e
			tied = []*compiledEntry{e}
		case s > 0 && s == maxScore:
			tied = append(tied, e)
		}
	}

	if maxScore == 0 {
		return Reply{Reply: r.fallback, Suggestions: []string{}}
	}

	if len(tied) > 1 && maxScore < clarifyBelow {
		labels := make([]string, len(tied))
		suggestions := make([]string, len(tied))
		for i, e := range tied {
			labels[i] = e.Label
			suggestions[i] = "Tell me about " + e.Label
		}
		return Reply{
			Reply:       fmt.Sprintf("I'm not quite sure, are you asking about %s?", strings.Join(labels, " or ")),
			Score:       maxScore,
			Suggestions: suggestions,
		}
	}

	reply := Reply{MatchFound: true, Score: maxScore, Suggestions: best.Suggestions}
	if n := len(best.Responses); n > 0 {
		reply.Reply = best.Responses[r.pick(n)]
	}
	if reply.Suggestions == nil {
		reply.Suggestions = []string{}
	}
	return reply
}
