package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/roach88/sitecalc/internal/calc"
	"github.com/roach88/sitecalc/internal/catalog"
	"github.com/roach88/sitecalc/internal/form"
	"github.com/roach88/sitecalc/internal/numfmt"
	"github.com/roach88/sitecalc/internal/pitch"
	"github.com/roach88/sitecalc/internal/units"
)

// Error codes recorded for failures that are not conversion errors.
const (
	CodeInvalidInput     = "INVALID_INPUT"
	CodeUnknownDimension = "UNKNOWN_DIMENSION"
	CodeUnknownNotation  = "UNKNOWN_NOTATION"
	CodeUnknownFormula   = "UNKNOWN_FORMULA"
	CodeUnknownPage      = "UNKNOWN_PAGE"
	CodeError            = "ERROR"
)

// Harness executes scenarios.
type Harness struct {
	logger  *slog.Logger
	catalog *catalog.Catalog
	display numfmt.Options
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// WithCatalog sets the catalog page steps run against. The default is the
// built-in catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(h *Harness) { h.catalog = c }
}

// WithDisplay sets the options format and page steps fall back to.
func WithDisplay(o numfmt.Options) Option {
	return func(h *Harness) { h.display = o }
}

// New builds a harness.
func New(opts ...Option) (*Harness, error) {
	h := &Harness{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		display: numfmt.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.catalog == nil {
		c, err := catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		h.catalog = c
	}
	return h, nil
}

// Run executes a scenario with a default harness.
func Run(scenario *Scenario) (*Result, error) {
	h, err := New()
	if err != nil {
		return nil, err
	}
	return h.Run(scenario)
}

// Run executes every step in order, recording each in the trace. A step
// whose expectation does not hold adds an error to the result; execution
// continues with the next step. The returned error is reserved for
// scenarios that cannot run at all.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario is nil")
	}
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	result := NewResult()
	for i := range scenario.Steps {
		st := &scenario.Steps[i]
		out := h.execute(st)

		seq := result.AddTrace(TraceEvent{
			Op:     st.Op,
			Args:   stepArgs(st),
			Result: out.trace(),
			Error:  out.code,
		})
		h.logger.Debug("step executed",
			"scenario", scenario.Name,
			"seq", seq,
			"op", st.Op,
			"error", out.code,
		)

		for _, msg := range check(st.Expect, out) {
			result.AddError(fmt.Sprintf("step %d (%s): %s", seq, st.Op, msg))
		}
	}

	h.logger.Info("scenario completed",
		"scenario", scenario.Name,
		"steps", len(scenario.Steps),
		"pass", result.Pass,
	)
	return result, nil
}

// outcome is what a step produced.
type outcome struct {
	value   float64
	pair    *units.Pair
	text    *string
	outputs map[string]units.Measurement
	fields  map[string]string
	errors  map[string]string
	code    string
	err     error
}

func failed(code string, err error) outcome {
	return outcome{value: math.NaN(), code: code, err: err}
}

func valued(v float64) outcome { return outcome{value: v} }

func paired(p units.Pair) outcome { return outcome{value: math.NaN(), pair: &p} }

func (h *Harness) execute(st *Step) outcome {
	switch st.Op {
	case OpConvert:
		t, o, ok := table(st.Dimension)
		if !ok {
			return o
		}
		v, err := units.Convert(amount(st.Amount), st.From, st.To, t)
		if err != nil {
			return failure(err)
		}
		return valued(v)

	case OpToComposite:
		d, o, ok := dimension(st.Dimension)
		if !ok {
			return o
		}
		c, err := composite(d, st.To)
		if err != nil {
			return failure(err)
		}
		p, err := units.ToComposite(amount(st.Amount), st.From, c)
		if err != nil {
			return failure(err)
		}
		return paired(p)

	case OpFromComposite:
		d, o, ok := dimension(st.Dimension)
		if !ok {
			return o
		}
		c, err := composite(d, st.From)
		if err != nil {
			return failure(err)
		}
		v, err := units.FromComposite(amount(st.Whole), amount(st.Fraction), c, st.To)
		if err != nil {
			return failure(err)
		}
		return valued(v)

	case OpBetweenComposites:
		d, o, ok := dimension(st.Dimension)
		if !ok {
			return o
		}
		from, err := composite(d, st.From)
		if err != nil {
			return failure(err)
		}
		to, err := composite(d, st.To)
		if err != nil {
			return failure(err)
		}
		p, err := units.BetweenComposites(amount(st.Whole), amount(st.Fraction), from, to)
		if err != nil {
			return failure(err)
		}
		return paired(p)

	case OpFormat:
		opts, err := h.formatOptions(st)
		if err != nil {
			return failed(CodeInvalidInput, err)
		}
		text := numfmt.Format(amount(st.Amount), opts)
		return outcome{value: math.NaN(), text: &text}

	case OpPitch:
		from, err := pitch.ParseNotation(st.From)
		if err != nil {
			return failed(CodeUnknownNotation, err)
		}
		to, err := pitch.ParseNotation(st.To)
		if err != nil {
			return failed(CodeUnknownNotation, err)
		}
		v, err := pitch.Convert(amount(st.Amount), from, to)
		if err != nil {
			return failure(err)
		}
		return valued(v)

	case OpCalc:
		return h.runFormula(st)

	case OpPage:
		return h.runPage(st)
	}
	return failed(CodeError, fmt.Errorf("unknown op %q", st.Op))
}

func (h *Harness) formatOptions(st *Step) (numfmt.Options, error) {
	opts := h.display
	if st.Digits != nil {
		opts.MaximumFractionDigits = *st.Digits
	}
	if st.Commas != nil {
		opts.UseCommas = *st.Commas
	}
	if st.Locale != "" {
		tag, err := language.Parse(st.Locale)
		if err != nil {
			return opts, fmt.Errorf("locale %q: %w", st.Locale, err)
		}
		opts.Locale = tag
	}
	return opts, nil
}

// runFormula converts the inputs to base units, runs the formula and keeps
// the outputs as base-unit measurements.
func (h *Harness) runFormula(st *Step) outcome {
	f, ok := calc.Lookup(st.Formula)
	if !ok {
		return failed(CodeUnknownFormula, fmt.Errorf("unknown formula %q", st.Formula))
	}

	in := calc.Values{}
	for _, name := range sortedKeys(st.Inputs) {
		m := st.Inputs[name]
		p, ok := f.Param(name)
		if !ok || f.Output(name) {
			return failed(CodeInvalidInput, fmt.Errorf("formula %s has no input %q", f.Name, name))
		}
		v, err := base(p.Dimension, m)
		if err != nil {
			return failure(err)
		}
		in[name] = v
	}

	out, err := f.Run(in)
	if err != nil {
		return failure(err)
	}

	o := outcome{value: math.NaN(), outputs: map[string]units.Measurement{}}
	for _, p := range f.Outputs {
		v := out.Get(p.Name)
		if p.Dimension == units.DimensionUnknown {
			o.outputs[p.Name] = units.Measurement{Amount: v, Pair: units.EmptyPair()}
			continue
		}
		t, err := units.TableFor(p.Dimension)
		if err != nil {
			return failure(err)
		}
		o.outputs[p.Name] = units.PlainValue(v, units.Plain{Sym: t.Base(), Dimension: p.Dimension})
	}
	return o
}

// base reads a measure in base units. Unitless measures pass through.
func base(d units.Dimension, m Measure) (float64, error) {
	if d == units.DimensionUnknown {
		if m.Unit != "" {
			return math.NaN(), units.NewUnknownUnit(m.Unit, d)
		}
		return amount(m.Value), nil
	}
	t, err := units.TableFor(d)
	if err != nil {
		return math.NaN(), err
	}
	sym := m.Unit
	if sym == "" {
		sym = t.Base()
	}
	u, err := units.ParseUnit(d, sym)
	if err != nil {
		return math.NaN(), err
	}
	switch u := u.(type) {
	case units.Composite:
		return units.CompositeValue(amount(m.Whole), amount(m.Fraction), u).Base()
	case units.Plain:
		return units.PlainValue(amount(m.Value), u).Base()
	}
	return math.NaN(), fmt.Errorf("unsupported unit type %T", u)
}

// runPage replays events on a fresh page and reads back every field.
func (h *Harness) runPage(st *Step) outcome {
	p, ok := h.catalog.Page(st.Page)
	if !ok {
		return failed(CodeUnknownPage, fmt.Errorf("unknown page %q", st.Page))
	}
	opts, err := h.formatOptions(st)
	if err != nil {
		return failed(CodeInvalidInput, err)
	}
	s, err := form.New(p, opts)
	if err != nil {
		return failed(CodeError, err)
	}

	for _, e := range st.Events {
		s = form.Reduce(s, pageEvent(e))
	}

	o := outcome{value: math.NaN(), fields: map[string]string{}, errors: map[string]string{}}
	for _, f := range s.Fields {
		text := f.Raw
		if f.Composite() {
			text = strings.TrimSpace(f.Raw + " " + f.RawMinor)
		}
		o.fields[f.Name()] = text
	}
	for k, v := range s.Errors {
		o.errors[k] = v
	}
	return o
}

func pageEvent(e PageEvent) form.Event {
	switch {
	case e.Edit != "":
		return form.EditValue{Field: e.Edit, Raw: e.Raw}
	case e.Minor != "":
		return form.EditMinor{Field: e.Minor, Raw: e.Raw}
	case e.Unit != "":
		return form.ChangeUnit{Field: e.Unit, Unit: e.To}
	default:
		return form.Reset{}
	}
}

func amount(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

func dimension(name string) (units.Dimension, outcome, bool) {
	d, err := units.ParseDimension(name)
	if err != nil {
		return d, failed(CodeUnknownDimension, err), false
	}
	return d, outcome{}, true
}

func table(name string) (*units.Table, outcome, bool) {
	d, o, ok := dimension(name)
	if !ok {
		return nil, o, false
	}
	t, err := units.TableFor(d)
	if err != nil {
		return nil, failed(CodeUnknownDimension, err), false
	}
	return t, outcome{}, true
}

// composite resolves symbol to one of d's predefined composites.
func composite(d units.Dimension, symbol string) (units.Composite, error) {
	u, err := units.ParseUnit(d, symbol)
	if err != nil {
		return units.Composite{}, err
	}
	c, ok := u.(units.Composite)
	if !ok {
		return units.Composite{}, units.NewUnknownUnit(symbol, d)
	}
	return c, nil
}

// failure classifies err into an error code.
func failure(err error) outcome {
	if code := units.CodeOf(err); code != "" {
		return failed(string(code), err)
	}
	var ie *calc.InputError
	if errors.As(err, &ie) {
		return failed(CodeInvalidInput, err)
	}
	return failed(CodeError, err)
}

// num renders v with twelve significant digits; NaN renders as "".
func num(v float64) string {
	if units.IsEmpty(v) {
		return ""
	}
	if v == 0 {
		v = 0 // -0
	}
	return strconv.FormatFloat(v, 'g', 12, 64)
}

func (o outcome) trace() map[string]string {
	if o.err != nil {
		return map[string]string{"message": o.err.Error()}
	}
	r := map[string]string{}
	switch {
	case o.pair != nil:
		r["whole"] = num(o.pair.Whole)
		r["fraction"] = num(o.pair.Fraction)
	case o.text != nil:
		r["text"] = *o.text
	case o.outputs != nil:
		for name, m := range o.outputs {
			r[name] = strings.TrimSpace(num(m.Amount) + " " + symbol(m.Unit))
		}
	case o.fields != nil:
		for name, text := range o.fields {
			r[name] = text
		}
		for name, msg := range o.errors {
			r["error:"+name] = msg
		}
	default:
		r["value"] = num(o.value)
	}
	return r
}

func symbol(u units.Unit) string {
	if u == nil {
		return ""
	}
	return u.Symbol()
}

// stepArgs collects the arguments that were set on st for the trace.
func stepArgs(st *Step) map[string]any {
	args := map[string]any{}
	set := func(k, v string) {
		if v != "" {
			args[k] = v
		}
	}
	setNum := func(k string, v *float64) {
		if v != nil {
			args[k] = num(*v)
		}
	}
	set("dimension", st.Dimension)
	setNum("amount", st.Amount)
	setNum("whole", st.Whole)
	setNum("fraction", st.Fraction)
	set("from", st.From)
	set("to", st.To)
	if st.Digits != nil {
		args["digits"] = *st.Digits
	}
	if st.Commas != nil {
		args["commas"] = *st.Commas
	}
	set("locale", st.Locale)
	set("formula", st.Formula)
	if len(st.Inputs) > 0 {
		in := map[string]string{}
		for name, m := range st.Inputs {
			in[name] = measureText(m)
		}
		args["inputs"] = in
	}
	set("page", st.Page)
	if len(st.Events) > 0 {
		events := make([]string, len(st.Events))
		for i, e := range st.Events {
			events[i] = eventText(e)
		}
		args["events"] = events
	}
	return args
}

func measureText(m Measure) string {
	var parts []string
	if m.Value != nil {
		parts = append(parts, num(*m.Value))
	}
	if m.Whole != nil || m.Fraction != nil {
		parts = append(parts, num(amount(m.Whole)), num(amount(m.Fraction)))
	}
	if m.Unit != "" {
		parts = append(parts, m.Unit)
	}
	return strings.Join(parts, " ")
}

func eventText(e PageEvent) string {
	switch {
	case e.Edit != "":
		return fmt.Sprintf("edit %s %q", e.Edit, e.Raw)
	case e.Minor != "":
		return fmt.Sprintf("minor %s %q", e.Minor, e.Raw)
	case e.Unit != "":
		return fmt.Sprintf("unit %s %s", e.Unit, e.To)
	default:
		return "reset"
	}
}

// sortedKeys returns the keys of m in order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
