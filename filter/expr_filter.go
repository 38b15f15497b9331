package filter

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/wcfetch/woocommerce"
)

// ExprFilter represents a compiled expr filter
type ExprFilter struct {
	program *vm.Program
	expr    string
}

// CompileExprFilter compiles an expr filter expression over product fields,
// e.g. `stock_status == "instock" && num(price) < 20 && hasTag("sale")`.
func CompileExprFilter(expression string) (*ExprFilter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	program, err := expr.Compile(expression,
		expr.Env(newEnv(woocommerce.Product{})),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, &CompilationError{Expression: expression, Reason: err.Error(), Err: err}
	}

	return &ExprFilter{
		program: program,
		expr:    expression,
	}, nil
}

// Evaluate runs the filter against a product.
func (f *ExprFilter) Evaluate(p woocommerce.Product) (bool, error) {
	result, err := expr.Run(f.program, newEnv(p))
	if err != nil {
		return false, &EvaluationError{Expression: f.expr, ProductID: p.ID(), Reason: err.Error(), Err: err}
	}

	matched, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: f.expr,
			ProductID:  p.ID(),
			Reason:     fmt.Sprintf("expression returned %T, not bool", result),
		}
	}
	return matched, nil
}

// Match is Evaluate with errors treated as no match.
func (f *ExprFilter) Match(p woocommerce.Product) bool {
	ok, err := f.Evaluate(p)
	return err == nil && ok
}

// Apply returns the products the filter matches, in input order. Products
// whose evaluation fails are skipped and their errors joined.
func (f *ExprFilter) Apply(products []woocommerce.Product) ([]woocommerce.Product, error) {
	var (
		matched []woocommerce.Product
		errs    []error
	)
	for _, p := range products {
		ok, err := f.Evaluate(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			matched = append(matched, p)
		}
	}
	return matched, errors.Join(errs...)
}

// String returns the original expression
func (f *ExprFilter) String() string {
	return f.expr
}

// newEnv exposes the product fields at top level next to helper functions.
// Field names shadowed by a helper stay reachable through Product.
func newEnv(p woocommerce.Product) map[string]any {
	env := make(map[string]any, len(p)+16)
	for k, v := range p {
		env[k] = normalize(v)
	}

	env["Product"] = normalize(map[string]any(p))
	env["hasTag"] = func(tag string) bool {
		return containsFold(p.Tags(), tag)
	}
	env["inCategory"] = func(category string) bool {
		return containsFold(p.Categories(), category)
	}
	env["field"] = func(key string) string {
		return p.String(key)
	}
	env["num"] = toFloat
	// contains, startsWith and endsWith are expr operators; like is the
	// case-insensitive variant of contains.
	env["like"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper

	return env
}

// normalize converts json.Number to int or float64 so expr can compare them.
func normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i)
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	}
	return v
}

// toFloat converts numbers and numeric strings (WooCommerce sends prices as
// strings) to float64. Anything else is 0.
func toFloat(v any) float64 {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case float64:
		return t
	case json.Number:
		f, _ := t.Float64()
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
