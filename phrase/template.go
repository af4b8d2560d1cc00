package phrase

import (
	"regexp"
	"strings"
)

// placeholderPattern matches placeholder tokens like {$name} inside a
// phrase template. The name must be an identifier (\w+).
var placeholderPattern = regexp.MustCompile(`\{\$(\w+)\}`)

// matcher is a compiled source template: an anchored regular expression
// whose named groups capture placeholder values and whose final unnamed
// group captures the trailing remainder of the input.
type matcher struct {
	re *regexp.Regexp
}

// compileTemplate converts a source template into a matcher.
//
// Literal runs are quoted so regex metacharacters in the template match
// themselves. Each {$name} placeholder becomes a named non-greedy group
// matching one or more characters, so a following literal bounds the
// capture. The whole pattern is anchored at the start of the input and
// ends with an extra (.*) group: the matcher consumes a prefix of the
// input and captures whatever follows to end of string.
//
// A template that reuses the same placeholder name fails to compile
// (duplicate group names are rejected by the regexp package); callers
// skip such entries.
func compileTemplate(tmpl string) (*matcher, error) {
	var pattern strings.Builder
	pattern.WriteString("^")
	last := 0
	for _, loc := range placeholderPattern.FindAllStringSubmatchIndex(tmpl, -1) {
		pattern.WriteString(regexp.QuoteMeta(tmpl[last:loc[0]]))
		pattern.WriteString("(?P<")
		pattern.WriteString(tmpl[loc[2]:loc[3]])
		pattern.WriteString(">.+?)")
		last = loc[1]
	}
	pattern.WriteString(regexp.QuoteMeta(tmpl[last:]))
	pattern.WriteString("(.*)$")

	re, err := regexp.Compile(pattern.String())
	if err != nil {
		return nil, err
	}
	return &matcher{re: re}, nil
}

// apply attempts a prefix match of message. On success it substitutes
// each captured placeholder value into target, appends the trailing
// remainder verbatim, and returns the result. Placeholders in target
// that were not captured from the source stay as literal {$name} text.
func (m *matcher) apply(message, target string) (string, bool) {
	caps := m.re.FindStringSubmatch(message)
	if caps == nil {
		return "", false
	}

	out := target
	for i, name := range m.re.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		out = strings.ReplaceAll(out, "{$"+name+"}", caps[i])
	}

	// The last group is always the trailing remainder.
	return out + caps[len(caps)-1], true
}
