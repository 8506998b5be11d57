package seq

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"math"
	"strconv"
	"strings"
)

// Kind é a tag de tipo de um Value, fixada na construção.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindText
)

var ErrUnsupportedLiteral = errors.New("seq: unsupported literal")

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	default:
		return "invalid"
	}
}

// ParseKind aceita os nomes usados na linha de comando (int, float, text e sinônimos).
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "int", "integer", "int64", "long":
		return KindInt, nil
	case "float", "double", "float64":
		return KindFloat, nil
	case "text", "string", "str":
		return KindText, nil
	}
	return KindInvalid, fmt.Errorf("seq: unknown kind %q", name)
}

// Value é um elemento de coleção heterogênea: exatamente um de int64, float64 ou string.
//
// O valor zero tem KindInvalid.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

func Int(v int64) Value     { return Value{kind: KindInt, i: v} }
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }
func Text(v string) Value   { return Value{kind: KindText, s: v} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) Int() (int64, bool)     { return v.i, v.kind == KindInt }
func (v Value) Float() (float64, bool) { return v.f, v.kind == KindFloat }
func (v Value) Text() (string, bool)   { return v.s, v.kind == KindText }

// Any devolve o payload como int64, float64 ou string (nil se inválido).
func (v Value) Any() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindText:
		return v.s
	}
	return nil
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloatLiteral(v.f)
	case KindText:
		return v.s
	}
	return "<invalid>"
}

// FromAny converte um valor dinâmico de Go em Value.
// Inteiros (com ou sem sinal) viram KindInt, float32/float64 viram KindFloat e
// string vira KindText. Qualquer outro tipo, ou uint acima de MaxInt64, devolve false.
func FromAny(x any) (Value, bool) {
	switch t := x.(type) {
	case Value:
		return t, t.kind != KindInvalid
	case int:
		return Int(int64(t)), true
	case int8:
		return Int(int64(t)), true
	case int16:
		return Int(int64(t)), true
	case int32:
		return Int(int64(t)), true
	case int64:
		return Int(t), true
	case uint:
		return fromUint(uint64(t))
	case uint8:
		return Int(int64(t)), true
	case uint16:
		return Int(int64(t)), true
	case uint32:
		return Int(int64(t)), true
	case uint64:
		return fromUint(t)
	case float32:
		return Float(float64(t)), true
	case float64:
		return Float(t), true
	case string:
		return Text(t), true
	}
	return Value{}, false
}

func fromUint(u uint64) (Value, bool) {
	if u > math.MaxInt64 {
		return Value{}, false
	}
	return Int(int64(u)), true
}

// Values constrói uma sequência a partir de literais.
func Values(vs ...Value) iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for _, v := range vs {
			if !yield(v) {
				return
			}
		}
	}
}

// OfKind devolve só os elementos cuja tag é exatamente k.
// Não há coerção: pedir KindInt nunca devolve um KindFloat, mesmo com valor inteiro.
func OfKind(s iter.Seq[Value], k Kind) iter.Seq[Value] {
	return Where(s, func(v Value) bool { return v.kind == k })
}

// Ints estreita para KindInt e devolve o payload int64.
func Ints(s iter.Seq[Value]) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		for v := range s {
			if v.kind == KindInt && !yield(v.i) {
				return
			}
		}
	}
}

// Floats estreita para KindFloat e devolve o payload float64.
func Floats(s iter.Seq[Value]) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for v := range s {
			if v.kind == KindFloat && !yield(v.f) {
				return
			}
		}
	}
}

// Texts estreita para KindText e devolve o payload string.
func Texts(s iter.Seq[Value]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for v := range s {
			if v.kind == KindText && !yield(v.s) {
				return
			}
		}
	}
}

// ParseValues lê um array JSON de literais.
//
// Regra de tag: um número sem '.', 'e' ou 'E' no texto, que caiba em int64, é KindInt;
// qualquer outro número é KindFloat (3 é int, 3.0 é float). Strings são KindText.
// bool, null, objetos e arrays aninhados retornam ErrUnsupportedLiteral.
func ParseValues(data []byte) ([]Value, error) {
	var out []Value
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindInt:
		return strconv.AppendInt(nil, v.i, 10), nil
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedLiteral, v.f)
		}
		return []byte(formatFloatLiteral(v.f)), nil
	case KindText:
		return json.Marshal(v.s)
	}
	return nil, fmt.Errorf("%w: invalid value", ErrUnsupportedLiteral)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	n, ok := raw.(json.Number)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedLiteral, jsonKind(raw))
	}
	parsed, err := parseNumber(n.String())
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func parseNumber(lit string) (Value, error) {
	if !strings.ContainsAny(lit, ".eE") {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return Int(i), nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %s", ErrUnsupportedLiteral, lit)
	}
	return Float(f), nil
}

// formatFloatLiteral mantém a forma de float no texto (3 -> "3.0"),
// para que o literal volte como KindFloat em ParseValues.
func formatFloatLiteral(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func jsonKind(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	return fmt.Sprintf("%T", raw)
}
