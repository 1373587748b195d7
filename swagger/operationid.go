package swagger

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// OperationNames is the set of operation ids taken within one document.
// The zero value is not usable; create it with NewOperationNames.
type OperationNames struct {
	taken map[string]struct{}
}

// NewOperationNames creates an empty operation id set.
func NewOperationNames() *OperationNames {
	return &OperationNames{taken: make(map[string]struct{})}
}

// Contains reports whether id is already taken.
func (n *OperationNames) Contains(id string) bool {
	_, ok := n.taken[id]
	return ok
}

// Len returns the number of taken ids.
func (n *OperationNames) Len() int {
	return len(n.taken)
}

// Reserve takes and returns the first free id among primary, secondary,
// then secondary suffixed with "_1", "_2" and so on.
func (n *OperationNames) Reserve(primary, secondary string) string {
	candidate := primary
	if n.Contains(candidate) {
		candidate = secondary
		for i := 1; n.Contains(candidate); i++ {
			candidate = secondary + "_" + strconv.Itoa(i)
		}
	}
	n.taken[candidate] = struct{}{}
	return candidate
}

// ReserveFor takes the operation id of an endpoint.
func (n *OperationNames) ReserveFor(d EndpointDescriptor) string {
	return n.Reserve(FriendlyID(d), QualifiedFriendlyID(d))
}

// FriendlyID derives the primary operation id of an endpoint from its
// method and path: "GET users/{id}" becomes "GetUsersById".
func FriendlyID(d EndpointDescriptor) string {
	var b strings.Builder
	b.WriteString(titleWord(strings.ToLower(d.Method)))

	for segment := range strings.SplitSeq(d.Path(), "/") {
		if segment == "" {
			continue
		}
		if name, ok := placeholderName(segment); ok {
			b.WriteString("By")
			segment = name
		}
		for _, word := range splitWords(segment) {
			b.WriteString(titleWord(word))
		}
	}

	return b.String()
}

// QualifiedFriendlyID derives the fallback operation id from the group and
// action names: "Users_GetById". Without an action the primary id stands in;
// without a group the primary id is returned as is.
func QualifiedFriendlyID(d EndpointDescriptor) string {
	primary := FriendlyID(d)
	if d.Group == "" {
		return primary
	}
	action := primary
	if d.Action != "" {
		action = strcase.ToCamel(d.Action)
	}
	return strcase.ToCamel(d.Group) + "_" + action
}

// titleWord upper-cases the first letter of word and keeps the rest, so
// "userId" becomes "UserId". Casers are stateful and are not shared.
func titleWord(word string) string {
	return cases.Title(language.Und, cases.NoLower).String(word)
}

// placeholderName returns the variable name of a "{name}" or
// "{name:pattern}" path segment.
func placeholderName(segment string) (string, bool) {
	if !strings.HasPrefix(segment, "{") || !strings.HasSuffix(segment, "}") {
		return "", false
	}
	name, _, _ := strings.Cut(segment[1:len(segment)-1], ":")
	return name, true
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
