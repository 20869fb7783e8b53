package value

import "strings"

// List is an ordered sequence of values, in the order the user typed them
type List []Value

// ParseList converts host text tokens into values
func ParseList(tokens []string) List {
	list := make(List, 0, len(tokens))
	for _, t := range tokens {
		list = append(list, Parse(t))
	}
	return list
}

// Fields splits a command line on whitespace and converts each token
func Fields(line string) List {
	return ParseList(strings.Fields(line))
}

func (l List) String() string {
	return strings.Join(l.Strings(), " ")
}

// Strings renders each value, the inverse of ParseList for well formed input
func (l List) Strings() []string {
	out := make([]string, len(l))
	for i, v := range l {
		out[i] = v.String()
	}
	return out
}
