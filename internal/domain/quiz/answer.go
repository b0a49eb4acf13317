// Package quiz models quiz answers and the answer-to-scent-family mapping
// that turns them into personality signal.
package quiz

import (
	"sort"
	"strings"

	"github.com/kailas-cloud/scentdex/internal/domain"
)

// Answer is a single quiz response: which question, which selected value,
// plus optional free-form context the user typed.
type Answer struct {
	questionID string
	value      string
	context    string
}

// NewAnswer creates a quiz answer. The selected value is normalized to
// lower-case with trimmed whitespace so lookups and cache keys are stable.
func NewAnswer(questionID, value, context string) Answer {
	return Answer{
		questionID: strings.TrimSpace(questionID),
		value:      strings.ToLower(strings.TrimSpace(value)),
		context:    strings.TrimSpace(context),
	}
}

// QuestionID returns the question identifier.
func (a *Answer) QuestionID() string { return a.questionID }

// Value returns the normalized selected value.
func (a *Answer) Value() string { return a.value }

// Context returns the free-form context, if any.
func (a *Answer) Context() string { return a.context }

// ResponseSet is an ordered sequence of quiz answers, owned by the request
// for its lifetime only.
type ResponseSet struct {
	answers []Answer
}

// NewResponseSet validates and wraps an answer sequence.
// Fails with domain.ErrEmptyInput on an empty sequence.
func NewResponseSet(answers []Answer) (ResponseSet, error) {
	if len(answers) == 0 {
		return ResponseSet{}, domain.ErrEmptyInput
	}
	return ResponseSet{answers: answers}, nil
}

// Answers returns the ordered answer sequence.
func (r *ResponseSet) Answers() []Answer { return r.answers }

// Len returns the number of answers.
func (r *ResponseSet) Len() int { return len(r.answers) }

// ValueFor returns the selected value for the given question, if answered.
func (r *ResponseSet) ValueFor(questionID string) (string, bool) {
	for i := range r.answers {
		if r.answers[i].questionID == questionID {
			return r.answers[i].value, true
		}
	}
	return "", false
}

// NormalizedKey returns a stable representation of the response set for cache
// keying: answers sorted by question id, joined as "id=value" pairs. Free-form
// context is excluded because it does not influence the computed profile.
func (r *ResponseSet) NormalizedKey() string {
	pairs := make([]string, len(r.answers))
	for i := range r.answers {
		pairs[i] = r.answers[i].questionID + "=" + r.answers[i].value
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "&")
}
