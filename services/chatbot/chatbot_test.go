package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespond_Scoring(t *testing.T) {
	r := NewResponder([]Entry{
		{Label: "loans", Patterns: []string{"education loan"}, Responses: []string{"loan reply"}, Suggestions: []string{"Check eligibility"}},
		{Label: "visa", Patterns: []string{"visa"}, Responses: []string{"visa reply"}},
	})

	tests := []struct {
		msg     string
		reply   string
		score   int
		matched bool
	}{
		{"I need an Education Loan", "loan reply", 5, true},
		{"visa", "visa reply", 4, true},
		{"tell me about loan options", "loan reply", 1, true},
		{"nothing relevant", FallbackReply, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			got := r.Respond(tt.msg)
			assert.Equal(t, tt.reply, got.Reply)
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, tt.matched, got.MatchFound)
			assert.NotNil(t, got.Suggestions)
		})
	}
}

func TestRespond_WordBoundaries(t *testing.T) {
	r := NewResponder([]Entry{{Label: "loans", Patterns: []string{"loan"}, Responses: []string{"ok"}}})

	// substring still earns the phrase weight, but not the word weight
	assert.Equal(t, 3, r.Respond("loaner").Score)
	assert.Equal(t, 4, r.Respond("a loan please").Score)
}

func TestRespond_TieAsksForClarification(t *testing.T) {
	r := NewResponder([]Entry{
		{Label: "alpha", Patterns: []string{"apple"}, Responses: []string{"a"}},
		{Label: "beta", Patterns: []string{"apple"}, Responses: []string{"b"}},
	})

	got := r.Respond("apple")

	assert.False(t, got.MatchFound)
	assert.Equal(t, 4, got.Score)
	assert.Equal(t, "I'm not quite sure, are you asking about alpha or beta?", got.Reply)
	assert.Equal(t, []string{"Tell me about alpha", "Tell me about beta"}, got.Suggestions)
}

func TestRespond_HighScoringTieTakesFirst(t *testing.T) {
	r := NewResponder([]Entry{
		{Label: "alpha", Patterns: []string{"green apple"}, Responses: []string{"a"}},
		{Label: "beta", Patterns: []string{"green apple"}, Responses: []string{"b"}},
	})

	got := r.Respond("green apple")

	assert.True(t, got.MatchFound)
	assert.Equal(t, 5, got.Score)
	assert.Equal(t, "a", got.Reply)
}

func TestRespond_HigherScoreResetsTies(t *testing.T) {
	r := NewResponder([]Entry{
		{Label: "alpha", Patterns: []string{"apple"}, Responses: []string{"a"}},
		{Label: "beta", Patterns: []string{"apple"}, Responses: []string{"b"}},
		{Label: "gamma", Patterns: []string{"apple", "pie"}, Responses: []string{"c"}},
	})

	got := r.Respond("apple pie")

	assert.True(t, got.MatchFound)
	assert.Equal(t, 8, got.Score)
	assert.Equal(t, "c", got.Reply)
}

func TestRespond_PicksResponseVariant(t *testing.T) {
	var asked int
	r := NewResponder(
		[]Entry{{Label: "hi", Patterns: []string{"hello"}, Responses: []string{"one", "two", "three"}}},
		WithPicker(func(n int) int {
			asked = n
			return n - 1
		}),
	)

	assert.Equal(t, "three", r.Respond("hello").Reply)
	assert.Equal(t, 3, asked)
}

func TestRespond_CustomFallback(t *testing.T) {
	r := NewResponder(nil, WithFallback("call us"))

	got := r.Respond("anything")
	assert.Equal(t, "call us", got.Reply)
	assert.Empty(t, got.Suggestions)
}

func TestDefaultKnowledgeBase(t *testing.T) {
	for _, e := range DefaultKnowledgeBase {
		require.NotEmpty(t, e.Label)
		assert.NotEmpty(t, e.Patterns, e.Label)
		assert.NotEmpty(t, e.Responses, e.Label)
	}

	r := NewResponder(DefaultKnowledgeBase, WithPicker(func(int) int { return 0 }))

	got := r.Respond("Can I get an education loan?")
	assert.True(t, got.MatchFound)
	assert.Contains(t, got.Suggestions, "Check loan eligibility")

	got = r.Respond("Do you offer IELTS coaching?")
	assert.True(t, got.MatchFound)
	assert.Contains(t, got.Reply, "IELTS")
}
