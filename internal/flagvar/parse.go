package flagvar

import (
	"flag"
	"fmt"
	"strings"
)

// Parse returns a flag.Value which sets *val to the result of parse.
func Parse[E any](val *E, parse func(string) (E, error)) flag.Value {
	return &parseValue[E]{val, parse}
}

type parseValue[E any] struct {
	val   *E
	parse func(string) (E, error)
}

func (p parseValue[E]) String() string {
	if p.val == nil {
		return ""
	}
	return fmt.Sprint(*p.val)
}
func (p *parseValue[E]) Set(s string) error {
	v, err := p.parse(s)
	if err != nil {
		return err
	}
	*p.val = v
	return nil
}

// List returns a flag.Value which appends to *vals each comma separated
// element of every occurrence of the flag, parsed with parse. Empty elements
// are skipped.
func List[E any](vals *[]E, parse func(string) (E, error)) flag.Value {
	return &listValue[E]{vals, parse}
}

// Strings is List for plain strings.
func Strings(vals *[]string) flag.Value {
	return List(vals, func(s string) (string, error) { return s, nil })
}

type listValue[E any] struct {
	vals  *[]E
	parse func(string) (E, error)
}

func (l listValue[E]) String() string {
	if l.vals == nil {
		return ""
	}
	elems := make([]string, len(*l.vals))
	for i, v := range *l.vals {
		elems[i] = fmt.Sprint(v)
	}
	return strings.Join(elems, ",")
}
func (l *listValue[E]) Set(s string) error {
	for _, elem := range strings.Split(s, ",") {
		elem = strings.TrimSpace(elem)
		if elem == "" {
			continue
		}
		v, err := l.parse(elem)
		if err != nil {
			return err
		}
		*l.vals = append(*l.vals, v)
	}
	return nil
}
