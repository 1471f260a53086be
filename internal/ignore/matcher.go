package ignore

import (
	"regexp"
	"strings"
)

type rule struct {
	pattern *regexp.Regexp
	negated bool
}

// Matcher applies glob rules to file names with "last rule wins" behavior.
type Matcher struct {
	rules []rule
}

// DefaultRules hide editor swap files, backups and temp files from the scratch folder.
var DefaultRules = []string{
	"*~",
	"*.swp",
	"*.swo",
	"*.tmp",
	`\#*#`,
	".#*",
}

// NewMatcher builds a matcher from user-provided rules.
// Default excludes are prepended and can be overridden by user negation rules.
func NewMatcher(userRules []string) *Matcher {
	all := make([]string, 0, len(DefaultRules)+len(userRules))
	all = append(all, DefaultRules...)
	all = append(all, userRules...)

	rules := make([]rule, 0, len(all))
	for _, line := range all {
		if parsed, ok := parseRule(line); ok {
			rules = append(rules, parsed)
		}
	}

	return &Matcher{rules: rules}
}

// ShouldIgnore returns true when fileName should be left out of the scratch list.
func (m *Matcher) ShouldIgnore(fileName string) bool {
	ignored := false
	for _, rule := range m.rules {
		if rule.pattern.MatchString(fileName) {
			ignored = !rule.negated
		}
	}
	return ignored
}

func parseRule(line string) (rule, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return rule{}, false
	}

	parsed := rule{}
	if strings.HasPrefix(line, "!") {
		parsed.negated = true
		line = strings.TrimPrefix(line, "!")
	}
	// A leading backslash escapes a literal "#" or "!".
	if strings.HasPrefix(line, `\#`) || strings.HasPrefix(line, `\!`) {
		line = line[1:]
	}
	if line == "" {
		return rule{}, false
	}

	re, err := regexp.Compile("^" + globToRegex(line) + "$")
	if err != nil {
		return rule{}, false
	}
	parsed.pattern = re
	return parsed, true
}

func globToRegex(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		ch := pattern[i]

		switch ch {
		case '*':
			b.WriteString(".*")
			continue
		case '?':
			b.WriteString(".")
			continue
		}

		if strings.ContainsRune(`.+()|[]{}^$\\`, rune(ch)) {
			b.WriteByte('\\')
		}
		b.WriteByte(ch)
	}
	return b.String()
}
