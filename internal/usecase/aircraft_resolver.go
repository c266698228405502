package usecase

import (
	"regexp"
	"strings"
	"sync"

	"flightlog-service/internal/domain/entity"
	"flightlog-service/pkg/logger"
)

// AircraftResolver answers aircraft type questions against the static
// reference table: exact ICAO lookup, display label formatting, and a
// best-guess mapping of loyalty-program aircraft codes to ICAO types.
//
// The label cache lives as long as the resolver. That is fine because the
// table never changes within a process; a resolver must be rebuilt if the
// table is ever reloaded.
type AircraftResolver struct {
	table  []entity.Aircraft
	find   func(icao string) *entity.Aircraft
	logger logger.Logger

	mu     sync.Mutex
	labels map[string]*string // nil value caches a miss
}

// NewAircraftResolver creates a resolver over the given reference table.
func NewAircraftResolver(table []entity.Aircraft, log logger.Logger) *AircraftResolver {
	r := &AircraftResolver{
		table:  table,
		logger: log,
		labels: make(map[string]*string),
	}
	r.find = r.scanICAO
	return r
}

// FromICAO returns the first entry with an exact ICAO match, or nil.
func (r *AircraftResolver) FromICAO(icao string) *entity.Aircraft {
	return r.find(icao)
}

func (r *AircraftResolver) scanICAO(icao string) *entity.Aircraft {
	for i := range r.table {
		if r.table[i].ICAO == icao {
			return &r.table[i]
		}
	}
	return nil
}

// Label returns a short display label for the given ICAO code, or nil when
// the code is unknown or the entry has no name. Both outcomes are cached,
// so repeated calls never rescan the table.
//
// The label is the first two whitespace-separated tokens of the entry name
// (manufacturer and model), each title-cased.
func (r *AircraftResolver) Label(icao string) *string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if label, ok := r.labels[icao]; ok {
		return label
	}

	entry := r.find(icao)
	if entry == nil || entry.Name == "" {
		r.labels[icao] = nil
		return nil
	}

	tokens := strings.Fields(entry.Name)
	if len(tokens) > 2 {
		tokens = tokens[:2]
	}
	for i, token := range tokens {
		tokens[i] = titleToken(token)
	}
	label := strings.Join(tokens, " ")
	r.labels[icao] = &label
	return &label
}

func titleToken(token string) string {
	if token == "" {
		return token
	}
	runes := []rune(token)
	return strings.ToUpper(string(runes[0])) + strings.ToLower(string(runes[1:]))
}

// Loyalty-code rules, evaluated top to bottom. The first rule whose match
// predicate accepts the code decides the outcome; a missing target entry
// yields nil without trying later rules.
var (
	a32xPattern    = regexp.MustCompile(`(?i)^32[A-Z]?$`)
	embraerPattern = regexp.MustCompile(`(?i)^E\d{2}$`)
	crjPattern     = regexp.MustCompile(`(?i)^CR\d$`)
	crjLongPattern = regexp.MustCompile(`(?i)^CR\d{2}$`)
	tripleDigits   = regexp.MustCompile(`^\d{3}$`)
)

type loyaltyCodeRule struct {
	name    string
	match   func(code string) bool
	resolve func(r *AircraftResolver, code string) *entity.Aircraft
}

var loyaltyCodeRules = []loyaltyCodeRule{
	{
		name:  "a220-300",
		match: func(code string) bool { return code == "223" },
		resolve: func(r *AircraftResolver, _ string) *entity.Aircraft {
			return r.findByName("A220-300")
		},
	},
	{
		name:  "a320-family",
		match: a32xPattern.MatchString,
		resolve: func(r *AircraftResolver, code string) *entity.Aircraft {
			if strings.HasSuffix(strings.ToUpper(code), "N") {
				return r.findByNameFold("a320neo")
			}
			return r.findByNameFoldExcluding("a320", "neo")
		},
	},
	{
		name:  "embraer",
		match: embraerPattern.MatchString,
		resolve: func(r *AircraftResolver, _ string) *entity.Aircraft {
			return r.findByNameFold("e195")
		},
	},
	{
		name: "crj",
		match: func(code string) bool {
			return crjPattern.MatchString(code) ||
				(crjLongPattern.MatchString(code) && code[2] >= '0' && code[2] <= '9')
		},
		resolve: func(r *AircraftResolver, _ string) *entity.Aircraft {
			return r.findByNameFold("crj-900")
		},
	},
	{
		name:  "airbus-numeric",
		match: tripleDigits.MatchString,
		resolve: func(r *AircraftResolver, code string) *entity.Aircraft {
			return r.find("A" + code)
		},
	},
}

// ResolveLoyaltyCode maps a loose loyalty-program aircraft code to an entry
// of the reference table, or nil when no rule matches or the matched rule's
// target is absent from the table.
func (r *AircraftResolver) ResolveLoyaltyCode(code string) *entity.Aircraft {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil
	}
	for _, rule := range loyaltyCodeRules {
		if rule.match(code) {
			entry := rule.resolve(r, code)
			if entry == nil {
				r.logger.Debug("loyalty code rule matched but target entry missing",
					"code", code, "rule", rule.name)
			}
			return entry
		}
	}
	return nil
}

func (r *AircraftResolver) findByName(substr string) *entity.Aircraft {
	for i := range r.table {
		if strings.Contains(r.table[i].Name, substr) {
			return &r.table[i]
		}
	}
	return nil
}

func (r *AircraftResolver) findByNameFold(substr string) *entity.Aircraft {
	substr = strings.ToLower(substr)
	for i := range r.table {
		if strings.Contains(strings.ToLower(r.table[i].Name), substr) {
			return &r.table[i]
		}
	}
	return nil
}

func (r *AircraftResolver) findByNameFoldExcluding(substr, excluded string) *entity.Aircraft {
	substr = strings.ToLower(substr)
	excluded = strings.ToLower(excluded)
	for i := range r.table {
		name := strings.ToLower(r.table[i].Name)
		if strings.Contains(name, substr) && !strings.Contains(name, excluded) {
			return &r.table[i]
		}
	}
	return nil
}
