package lint

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/adoclint/internal/logging"
)

var (
	// ErrInvalidArgument marks errors caused by a bad argument from the caller.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrRuleNotRegistered is returned by RemoveRule for an unknown rule.
	ErrRuleNotRegistered = errors.New("rule not registered")

	// ErrRulePanicked wraps the value recovered from a panicking rule.
	ErrRulePanicked = errors.New("rule panicked")
)

// Checker runs an ordered list of rules over documents.
//
// A Checker is long-lived. Validation only reads the rule list, so
// concurrent Validate calls are safe as long as no AddRule or RemoveRule
// runs at the same time; callers that mutate the list from several
// goroutines must serialize those calls themselves.
type Checker struct {
	rules  []Rule
	logger *log.Logger
}

type namedPack struct {
	name   string
	loader PackLoader
}

type checkerOptions struct {
	logger *log.Logger
	rules  []Rule
	packs  []namedPack
}

// CheckerOption configures a Checker.
type CheckerOption func(*checkerOptions)

// WithLogger sets the logger used for pack and rule failures.
func WithLogger(logger *log.Logger) CheckerOption {
	return func(o *checkerOptions) {
		o.logger = logger
	}
}

// WithRules registers rules ahead of any rule pack.
func WithRules(rules ...Rule) CheckerOption {
	return func(o *checkerOptions) {
		o.rules = append(o.rules, rules...)
	}
}

// WithRulePack loads a rule pack at construction. If the loader fails, the
// failure is logged and the Checker is built without that pack's rules.
func WithRulePack(name string, loader PackLoader) CheckerOption {
	return func(o *checkerOptions) {
		o.packs = append(o.packs, namedPack{name: name, loader: loader})
	}
}

// NewChecker creates a Checker. Construction never fails; with no options
// the Checker has zero rules and every validation returns no diagnostics.
func NewChecker(opts ...CheckerOption) *Checker {
	options := checkerOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	if options.logger == nil {
		options.logger = logging.Default()
	}

	checker := &Checker{
		rules:  slices.Clone(options.rules),
		logger: options.logger,
	}

	for _, pack := range options.packs {
		checker.loadPack(pack)
	}

	return checker
}

func (c *Checker) loadPack(pack namedPack) {
	if pack.loader == nil {
		c.logger.Warn("rule pack not found", logging.FieldPack, pack.name)
		return
	}

	rules, err := safeLoad(pack.loader)
	if err != nil {
		c.logger.Warn("rule pack not found",
			logging.FieldPack, pack.name,
			logging.FieldError, err,
		)
		return
	}

	c.rules = append(c.rules, rules...)
	c.logger.Debug("rule pack loaded",
		logging.FieldPack, pack.name,
		logging.FieldRules, len(rules),
	)
}

func safeLoad(loader PackLoader) (rules []Rule, err error) {
	defer func() {
		if r := recover(); r != nil {
			rules = nil
			err = fmt.Errorf("%w: %v", ErrRulePanicked, r)
		}
	}()
	return loader()
}

// AddRule appends a rule to the rule list.
func (c *Checker) AddRule(rule Rule) {
	c.rules = append(c.rules, rule)
}

// RemoveRule removes the first registered instance of rule, compared by
// identity. It fails with ErrRuleNotRegistered (wrapping ErrInvalidArgument)
// when rule is not registered, leaving the rule list unchanged.
func (c *Checker) RemoveRule(rule Rule) error {
	for idx, registered := range c.rules {
		if sameRule(registered, rule) {
			c.rules = slices.Delete(c.rules, idx, idx+1)
			return nil
		}
	}
	return fmt.Errorf("%w: %w", ErrInvalidArgument, ErrRuleNotRegistered)
}

func sameRule(a, b Rule) bool {
	if a == nil || b == nil {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// Validate checks the whole document.
func (c *Checker) Validate(document string) []Diagnostic {
	return c.ValidateContext(NewContext(document, nil))
}

// ValidateIncremental checks document with line-scoped rules restricted to
// changedLines (0-based, post-edit numbering). A nil slice validates every
// line, like Validate.
func (c *Checker) ValidateIncremental(document string, changedLines []int) []Diagnostic {
	return c.ValidateContext(NewContext(document, changedLines))
}

// ValidateContext runs every rule over ctx in registration order.
//
// A rule that returns an error or panics is logged and contributes no
// diagnostics; the remaining rules still run. The combined result is
// stable-sorted by line, then column.
func (c *Checker) ValidateContext(ctx *Context) []Diagnostic {
	diags := make([]Diagnostic, 0)

	for _, rule := range c.rules {
		found, err := runRule(rule, ctx)
		if err != nil {
			c.logger.Error("rule failed",
				logging.FieldRule, ruleName(rule),
				logging.FieldError, err,
			)
			continue
		}
		diags = append(diags, found...)
	}

	SortDiagnostics(diags)

	c.logger.Debug("validation pass complete",
		logging.FieldRules, len(c.rules),
		logging.FieldLines, ctx.LineCount(),
		logging.FieldIncremental, ctx.Incremental(),
		logging.FieldDiagnosticsTotal, len(diags),
	)

	return diags
}

func runRule(rule Rule, ctx *Context) (diags []Diagnostic, err error) {
	defer func() {
		if r := recover(); r != nil {
			diags = nil
			err = fmt.Errorf("%w: %v", ErrRulePanicked, r)
		}
	}()

	if rule == nil {
		return nil, fmt.Errorf("%w: nil rule", ErrInvalidArgument)
	}
	return rule.Validate(ctx)
}

// SortDiagnostics stable-sorts diagnostics by line, then column.
func SortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		if a.Line != b.Line {
			return a.Line - b.Line
		}
		return a.Column - b.Column
	})
}

// RulesCount returns the number of registered rules.
func (c *Checker) RulesCount() int {
	return len(c.rules)
}

// RuleNames returns the concrete type name of each registered rule, in
// registration order.
func (c *Checker) RuleNames() []string {
	names := make([]string, 0, len(c.rules))
	for _, rule := range c.rules {
		names = append(names, ruleName(rule))
	}
	return names
}

// Rules returns a copy of the registered rules, in registration order.
func (c *Checker) Rules() []Rule {
	return slices.Clone(c.rules)
}

func ruleName(rule Rule) string {
	if rule == nil {
		return "<nil>"
	}
	t := reflect.TypeOf(rule)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
