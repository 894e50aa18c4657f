// Package bank holds the static in-memory question repository.
//
// A Bank is immutable after construction, so it is safe to share across
// concurrently served sessions without locking.
package bank

import (
	"sort"

	"github.com/avinashb/quizmind/internal/quiz"
)

// Bank is an in-memory question repository keyed by subject.
type Bank struct {
	bySubject map[string][]*quiz.Question
	byID      map[string]*quiz.Question
	subjects  []string
}

// New builds a Bank from the given questions. Insertion order within a
// subject is preserved, which keeps query results deterministic.
func New(questions ...*quiz.Question) *Bank {
	b := &Bank{
		bySubject: make(map[string][]*quiz.Question),
		byID:      make(map[string]*quiz.Question),
	}
	for _, q := range questions {
		if _, dup := b.byID[q.ID]; dup {
			continue
		}
		if _, seen := b.bySubject[q.Subject]; !seen {
			b.subjects = append(b.subjects, q.Subject)
		}
		b.bySubject[q.Subject] = append(b.bySubject[q.Subject], q)
		b.byID[q.ID] = q
	}
	return b
}

// Matching returns the questions in subject whose difficulty equals d and
// whose id is not in exclude. An unknown subject yields an empty result,
// never an error: callers treat empty as "exhausted, ask the AI gateway".
// The order is the bank's insertion order, stable for identical inputs.
func (b *Bank) Matching(subject string, d quiz.Difficulty, exclude map[string]bool) []*quiz.Question {
	var out []*quiz.Question
	for _, q := range b.bySubject[subject] {
		if q.Difficulty != d {
			continue
		}
		if exclude[q.ID] {
			continue
		}
		out = append(out, q)
	}
	return out
}

// Get returns the question with the given id, looked up across all
// subjects.
func (b *Bank) Get(id string) (*quiz.Question, bool) {
	q, ok := b.byID[id]
	return q, ok
}

// Subjects returns the subject names in sorted order.
func (b *Bank) Subjects() []string {
	out := make([]string, len(b.subjects))
	copy(out, b.subjects)
	sort.Strings(out)
	return out
}

// Size returns the total number of questions in the bank.
func (b *Bank) Size() int {
	return len(b.byID)
}
