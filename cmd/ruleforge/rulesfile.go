package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gitrdm/ruleforge/pkg/rulekit"
)

// loadRuleBase reads a plain-text rule base from path. The format is one
// directive per line:
//
//	FACTS: attr=value, attr=value
//	RULE <id>: attr=value AND attr=value => attr=value
//
// Blank lines and lines starting with # are ignored. This is deliberately a
// minimal hand-rolled format, not a RuleSource implementation: generating
// rules from a labeled dataset (decision trees, random forests, naive
// row-to-rule) stays out of scope per the collaborator interfaces in
// internal/dataio.
func loadRuleBase(path string) ([]rulekit.Rule, rulekit.FactSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading rule base: %w", err)
	}
	defer f.Close()

	facts := rulekit.NewFactSet()
	var rules []rulekit.Rule

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "FACTS:"):
			for _, pair := range strings.Split(strings.TrimPrefix(line, "FACTS:"), ",") {
				f, err := parseFact(pair)
				if err != nil {
					return nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				facts.Add(f)
			}
		case strings.HasPrefix(line, "RULE"):
			r, err := parseRuleLine(line)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			rules = append(rules, r)
		default:
			return nil, nil, fmt.Errorf("line %d: unrecognized directive %q", lineNo, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading rule base: %w", err)
	}

	return rules, facts, nil
}

func parseRuleLine(line string) (rulekit.Rule, error) {
	rest := strings.TrimPrefix(line, "RULE")
	idPart, body, ok := strings.Cut(rest, ":")
	if !ok {
		return rulekit.Rule{}, fmt.Errorf("malformed rule line %q", line)
	}
	id, err := strconv.Atoi(strings.TrimSpace(idPart))
	if err != nil {
		return rulekit.Rule{}, fmt.Errorf("malformed rule id in %q: %w", line, err)
	}

	premiseText, conclusionText, ok := strings.Cut(body, "=>")
	if !ok {
		return rulekit.Rule{}, fmt.Errorf("rule %d missing '=>': %q", id, line)
	}

	var premises []rulekit.Fact
	for _, p := range strings.Split(premiseText, "AND") {
		f, err := parseFact(p)
		if err != nil {
			return rulekit.Rule{}, fmt.Errorf("rule %d: %w", id, err)
		}
		premises = append(premises, f)
	}

	conclusion, err := parseFact(conclusionText)
	if err != nil {
		return rulekit.Rule{}, fmt.Errorf("rule %d: %w", id, err)
	}

	return rulekit.NewRule(id, premises, conclusion)
}

func parseFact(s string) (rulekit.Fact, error) {
	attr, val, ok := strings.Cut(strings.TrimSpace(s), "=")
	if !ok {
		return rulekit.Fact{}, fmt.Errorf("malformed fact %q, expected attr=value", s)
	}
	return rulekit.NewFact(strings.TrimSpace(attr), strings.TrimSpace(val))
}
