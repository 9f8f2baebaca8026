package chatbot

import "strings"

// Reply kinds.
const (
	KindCrisis   = "crisis"
	KindKeyword  = "keyword"
	KindFallback = "fallback"
)

// Reply is the outcome of matching one message.
type Reply struct {
	Text    string `json:"response"`
	Kind    string `json:"kind"`
	Keyword string `json:"keyword,omitempty"`
}

type compiledRule struct {
	keywords []string
	response string
}

// Responder matches messages against a RuleSet. It holds no mutable state
// and is safe for concurrent use.
type Responder struct {
	crisis   []compiledRule
	general  []compiledRule
	fallback string
}

func NewResponder(rs *RuleSet) *Responder {
	return &Responder{
		crisis:   compile(rs.Crisis),
		general:  compile(rs.General),
		fallback: rs.Fallback,
	}
}

func compile(rules []Rule) []compiledRule {
	out := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		cr := compiledRule{response: r.Response}
		for _, k := range r.Keywords {
			cr.keywords = append(cr.keywords, strings.ToLower(strings.TrimSpace(k)))
		}
		out = append(out, cr)
	}
	return out
}

// Reply returns the response for message. The first rule with a keyword
// contained in the lower-cased message wins.
func (r *Responder) Reply(message string) Reply {
	msg := strings.ToLower(message)
	if text, kw, ok := firstMatch(r.crisis, msg); ok {
		return Reply{Text: text, Kind: KindCrisis, Keyword: kw}
	}
	if text, kw, ok := firstMatch(r.general, msg); ok {
		return Reply{Text: text, Kind: KindKeyword, Keyword: kw}
	}
	return Reply{Text: r.fallback, Kind: KindFallback}
}

func firstMatch(rules []compiledRule, msg string) (string, string, bool) {
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(msg, kw) {
				return rule.response, kw, true
			}
		}
	}
	return "", "", false
}
