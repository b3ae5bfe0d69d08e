package logs

import (
	"strings"
)

var levelRank = map[string]int{
	"DEBUG": 0,
	"INFO":  1,
	"WARN":  2,
	"ERROR": 3,
}

// Filter selects console-format lines ("ts LEVEL component: message ...").
// Zero values match everything. Lines that do not parse are kept only when
// no filter is set.
type Filter struct {
	MinLevel  string
	Component string
}

// Match reports whether line passes the filter.
func (f Filter) Match(line string) bool {
	minLevel := strings.ToUpper(strings.TrimSpace(f.MinLevel))
	component := strings.TrimSpace(f.Component)
	if minLevel == "" && component == "" {
		return true
	}

	fields := strings.SplitN(line, " ", 4)
	if len(fields) < 3 {
		return false
	}
	rank, ok := levelRank[fields[1]]
	if !ok {
		return false
	}
	if minLevel != "" && rank < levelRank[minLevel] {
		return false
	}
	if component != "" {
		name, found := strings.CutSuffix(fields[2], ":")
		if !found || !strings.EqualFold(name, component) {
			return false
		}
	}
	return true
}

// ValidLevel reports whether level names a known log level.
func ValidLevel(level string) bool {
	_, ok := levelRank[strings.ToUpper(strings.TrimSpace(level))]
	return ok
}
