package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/coprint/pkg/network"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms network script source before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: two-sided -> two_sided
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator).
//
// Both transformations respect string literal boundaries and ; comments,
// which are converted to zygomys // comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(strings.ReplaceAll(kwName, "-", "_"))...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a
		// minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpMachineRef wraps a machine so chunk declarations can reference it.
type sexpMachineRef struct {
	machine *network.Machine
}

func (m *sexpMachineRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(machine %q)", m.machine.Name)
}
func (m *sexpMachineRef) Type() *zygo.RegisteredType { return nil }

// sexpChunkRef wraps a chunk ID so scripts can build dependency lists
// from chunk expressions as well as plain strings.
type sexpChunkRef struct {
	id network.ChunkID
}

func (c *sexpChunkRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(chunk %q)", string(c.id))
}
func (c *sexpChunkRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string. Returns the
// keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument
// list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value; treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts a non-negative int from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	f, err := toFloat64(s)
	if err != nil {
		return 0, err
	}
	n := int(f)
	if float64(n) != f || n < 0 {
		return 0, fmt.Errorf("expected non-negative integer, got %s", s.SexpString(nil))
	}
	return n, nil
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toChunkID extracts a chunk reference from a string or a chunk value.
func toChunkID(s zygo.Sexp) (network.ChunkID, error) {
	switch v := s.(type) {
	case *zygo.SexpStr:
		return network.ChunkID(v.S), nil
	case *sexpChunkRef:
		return v.id, nil
	}
	return "", fmt.Errorf("expected chunk name or chunk value, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go
// slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the network DSL builtins into a zygomys
// environment. The builtins populate the provided network during
// evaluation.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens are converted to recognizable
// string literals.
func registerBuiltins(env *zygo.Zlisp, net *network.Network) {

	// -----------------------------------------------------------------------
	// (machine "m1" :speed 10 :depth 0.3 :width 0.5 :slope 1.2 :temp 210)
	// -----------------------------------------------------------------------
	env.AddFunction("machine", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("machine requires a name argument")
		}
		machineName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("machine: name: %w", err)
		}
		if net.Lookup(machineName) != nil {
			return zygo.SexpNull, fmt.Errorf("machine: duplicate machine %q", machineName)
		}

		var params network.MachineParameters
		for kw, dst := range map[string]*float64{
			"speed": &params.MachineSpeed,
			"depth": &params.BuildDepth,
			"width": &params.MachineWidth,
			"slope": &params.PrintheadSlope,
			"temp":  &params.Temperature,
		} {
			if v, ok := pa.kw[kw]; ok {
				f, err := toFloat64(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("machine: %s: %w", kw, err)
				}
				*dst = f
			}
		}

		m := net.AddMachine(machineName, params)
		return &sexpMachineRef{machine: m}, nil
	})

	// -----------------------------------------------------------------------
	// (chunk "a" :machine "m1" :frames 4 :deps ["b" "c"])
	// -----------------------------------------------------------------------
	env.AddFunction("chunk", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("chunk requires a name argument")
		}
		chunkName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("chunk: name: %w", err)
		}

		mv, ok := pa.kw["machine"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("chunk %q: missing :machine", chunkName)
		}
		var m *network.Machine
		switch ref := mv.(type) {
		case *sexpMachineRef:
			m = ref.machine
		case *zygo.SexpStr:
			m = net.Lookup(ref.S)
			if m == nil {
				return zygo.SexpNull, fmt.Errorf("chunk %q: no machine named %q", chunkName, ref.S)
			}
		default:
			return zygo.SexpNull, fmt.Errorf("chunk %q: :machine must be a name or machine value", chunkName)
		}

		c := &network.Chunk{ID: network.ChunkID(chunkName)}

		if v, ok := pa.kw["frames"]; ok {
			count, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("chunk %q: frames: %w", chunkName, err)
			}
			c.FrameData = make([]network.Frame, count)
		}

		if v, ok := pa.kw["deps"]; ok {
			items, err := sexpListToSlice(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("chunk %q: deps: %w", chunkName, err)
			}
			for _, item := range items {
				id, err := toChunkID(item)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("chunk %q: deps: %w", chunkName, err)
				}
				c.AddDependency(id)
			}
		}

		if err := m.AddChunk(c); err != nil {
			return zygo.SexpNull, fmt.Errorf("chunk %q: %w", chunkName, err)
		}

		return &sexpChunkRef{id: c.ID}, nil
	})
}
