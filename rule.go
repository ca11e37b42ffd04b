package wikitext

import "fmt"

// modifiers records which variant flags were written on a block name in
// the source: a '*' prefix (star), a '_' suffix (score) and a '='
// suffix (preserve body newlines as hard breaks).
type modifiers struct {
	star     bool
	score    bool
	newlines bool
}

// blockParseFn parses one invocation of its rule. The parser is
// positioned just after the block name and modifiers; head and body
// extraction go through the parser's helpers. A nil element means the
// block produced no output.
type blockParseFn func(p *parser, rule *BlockRule, m modifiers, inHead bool) Element

// BlockRule is an immutable descriptor of one block construct: its
// canonical name, accepted aliases, and the three variant capability
// flags. Rules are registered once at startup; names and aliases must
// be globally unique.
type BlockRule struct {
	Name            string
	Aliases         []string
	AcceptsStar     bool
	AcceptsScore    bool
	AcceptsNewlines bool

	parseFn blockParseFn
}

// names returns the canonical name followed by the aliases.
func (r *BlockRule) names() []string {
	return append([]string{r.Name}, r.Aliases...)
}

var blockRegistry = make(map[string]*BlockRule)

// registerBlocks installs rules into the lookup table. A duplicate name
// or alias is a programming error in the rule set and panics at
// startup, never at parse time.
func registerBlocks(rules ...*BlockRule) {
	for _, rule := range rules {
		for _, name := range rule.names() {
			if prev, ok := blockRegistry[name]; ok {
				panic(fmt.Sprintf("wikitext: block name %q registered by both %q and %q", name, prev.Name, rule.Name))
			}
			blockRegistry[name] = rule
		}
	}
}

// LookupBlock resolves a block name, written as in the source with
// modifiers stripped, to its rule. Matching is exact and
// case-sensitive over canonical names and aliases.
func LookupBlock(name string) (*BlockRule, bool) {
	rule, ok := blockRegistry[name]
	return rule, ok
}

// BlockRules returns the registered rules, one entry per rule, for
// tooling and tests. Order is unspecified.
func BlockRules() []*BlockRule {
	seen := make(map[*BlockRule]bool, len(blockRegistry))
	rules := make([]*BlockRule, 0, len(blockRegistry))
	for _, rule := range blockRegistry {
		if !seen[rule] {
			seen[rule] = true
			rules = append(rules, rule)
		}
	}
	return rules
}
