package mathsinterp

import (
	"encoding/json"
	"fmt"
	"math"
)

// ============================================================
// MCP Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result    interface{} `json:"result,omitempty"`
	LaTeX     string      `json:"latex,omitempty"`
	String    string      `json:"string,omitempty"`
	Error     string      `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// HandleToolCall runs one tool against the session.
func (ip *Interpreter) HandleToolCall(req ToolRequest) ToolResponse {
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	getNumber := func(key string) (float64, error) {
		v, ok := req.Params[key]
		if !ok {
			return 0, fmt.Errorf("missing param: %s", key)
		}
		f, ok := v.(float64)
		if !ok {
			return 0, fmt.Errorf("param %s must be a number", key)
		}
		return f, nil
	}
	// Absent optional numbers are NaN, which Domain treats as unset.
	getOptionalNumber := func(key string) (float64, error) {
		if v, ok := req.Params[key]; !ok || v == nil {
			return math.NaN(), nil
		}
		return getNumber(key)
	}
	fail := func(err error) ToolResponse { return ToolResponse{Error: err.Error()} }

	switch req.Tool {
	case "evaluate":
		text, err := getString("expr")
		if err != nil {
			return fail(err)
		}
		v, err := ip.Evaluate(text)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: v, String: ip.Format(v)}

	case "symbols":
		return ToolResponse{Result: ip.Symbols()}

	case "clear_symbols":
		ip.ClearSymbols()
		return ToolResponse{Result: []Entry{}}

	case "solve":
		text, err := getString("equation")
		if err != nil {
			return fail(err)
		}
		sol, err := ip.Solve(text)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: sol, String: sol.Unknown + " = " + ip.Format(sol.Value)}

	case "differentiate":
		text, err := getString("expr")
		if err != nil {
			return fail(err)
		}
		variable := ip.config.Variable
		if _, ok := req.Params["var"]; ok {
			if variable, err = getString("var"); err != nil {
				return fail(err)
			}
		}
		d, err := ip.DerivativeExpr(text, variable)
		if err != nil {
			return fail(err)
		}
		tree, err := ToJSON(d)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: json.RawMessage(tree), String: d.String(), LaTeX: d.LaTeX()}

	case "sample":
		text, err := getString("expr")
		if err != nil {
			return fail(err)
		}
		var d Domain
		if d.Min, err = getOptionalNumber("min"); err != nil {
			return fail(err)
		}
		if d.Max, err = getOptionalNumber("max"); err != nil {
			return fail(err)
		}
		if d.Step, err = getOptionalNumber("step"); err != nil {
			return fail(err)
		}
		points, err := ip.SamplePoints(text, d)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: points}

	case "tangent":
		text, err := getString("expr")
		if err != nil {
			return fail(err)
		}
		x0, err := getNumber("x0")
		if err != nil {
			return fail(err)
		}
		t, err := ip.Tangent(text, x0)
		if err != nil {
			return fail(err)
		}
		line := t.Line(ip.config.Variable)
		return ToolResponse{Result: t, String: line.String(), LaTeX: line.LaTeX()}

	case "tokenize":
		text, err := getString("expr")
		if err != nil {
			return fail(err)
		}
		tokens, err := Tokenize(text)
		if err != nil {
			return fail(err)
		}
		out := make([]map[string]interface{}, len(tokens))
		for i, tok := range tokens {
			out[i] = map[string]interface{}{"kind": tok.Kind.String(), "text": tok.Text, "pos": tok.Pos}
		}
		return ToolResponse{Result: out}

	case "mcp_spec":
		return ToolResponse{Result: json.RawMessage(MCPToolSpec())}
	}
	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ============================================================
// MCP spec
// ============================================================

func MCPToolSpec() string {
	tools := []map[string]interface{}{
		ts("evaluate", "Evaluate an expression or an assignment 'name = expr' in the session", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("symbols", "List session variable bindings in assignment order", []string{}, map[string]string{}),
		ts("clear_symbols", "Remove every session variable binding", []string{}, map[string]string{}),
		ts("solve", "Solve a linear equation with one unknown, e.g. '2*x+4=0'", []string{"equation"}, map[string]string{"equation": "string"}),
		ts("differentiate", "Symbolic derivative. Optional var (default from config)", []string{"expr"}, map[string]string{"expr": "string", "var": "string"}),
		ts("sample", "Sample points for plotting. min, max and step are optional and inferred when absent", []string{"expr"}, map[string]string{"expr": "string", "min": "number", "max": "number", "step": "number"}),
		ts("tangent", "Tangent line slope and intercept at x0", []string{"expr", "x0"}, map[string]string{"expr": "string", "x0": "number"}),
		ts("tokenize", "Show the tokens of an input line", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
