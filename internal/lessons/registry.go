package lessons

import (
	"fmt"
	"sort"
	"strings"
)

var registry = map[string]Lesson{}

// teachingOrder fixes the sequence `lessons list` and a bare
// `lessons run` follow. Registration happens in init functions, whose
// order tracks file names rather than pedagogy, so the order is spelled
// out here.
var teachingOrder = []string{
	"dense-baseline",
	"validation-curves",
	"model-capacity",
	"weight-regularization",
	"dropout",
	"alternative-loss",
	"embeddings",
	"simple-rnn",
	"lstm",
	"conv1d",
	"lexicon-baseline",
}

func register(l Lesson) {
	if _, dup := registry[l.Name]; dup {
		panic(fmt.Sprintf("lesson %q registered twice", l.Name))
	}
	registry[l.Name] = l
}

// Get resolves a lesson by name.
func Get(name string) (Lesson, error) {
	l, ok := registry[name]
	if !ok {
		names := make([]string, 0, len(registry))
		for n := range registry {
			names = append(names, n)
		}
		sort.Strings(names)
		return Lesson{}, fmt.Errorf("unknown lesson %q, have: %s", name, strings.Join(names, ", "))
	}
	return l, nil
}

// All returns every registered lesson in teaching order. A lesson
// missing from teachingOrder is appended at the end alphabetically
// rather than dropped.
func All() []Lesson {
	out := make([]Lesson, 0, len(registry))
	seen := map[string]bool{}
	for _, name := range teachingOrder {
		if l, ok := registry[name]; ok {
			out = append(out, l)
			seen[name] = true
		}
	}
	var rest []string
	for name := range registry {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		out = append(out, registry[name])
	}
	return out
}
