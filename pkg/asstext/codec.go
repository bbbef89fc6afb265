// codec.go converts between tag parameter text and typed values.
package asstext

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type decoder func(param string) (any, error)
type encoder func(value any) (string, error)

// DecodeTag decodes a complete parameter (including parentheses for function
// tags) of the named tag. The whole parameter must be consumed by the grammar.
func DecodeTag(name, param string) (any, error) {
	d, ok := registry.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTag, name)
	}
	matched, ok := d.matchParam(param)
	if !ok || matched != param {
		return nil, fmt.Errorf("%w: \\%s%s", ErrInvalidParameter, name, param)
	}
	return d.decodeParam(param)
}

// FormatTag returns the canonical parameter text for value, including
// parentheses for function tags.
func FormatTag(name string, value any) (string, error) {
	d, ok := registry.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTag, name)
	}
	if _, isDefault := value.(StyleDefault); isDefault && d.emptyDefault {
		return "", nil
	}
	s, err := d.format(value)
	if err != nil {
		return "", fmt.Errorf("format \\%s: %w", name, err)
	}
	if d.Function {
		return "(" + s + ")", nil
	}
	return s, nil
}

func wrongType(want string, got any) error {
	return fmt.Errorf("%w: want %s, got %T", ErrInvalidValue, want, got)
}

// Scalars

func floatCodec(valid func(float64) bool) (decoder, encoder) {
	dec := func(p string) (any, error) {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil || (valid != nil && !valid(f)) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidParameter, p)
		}
		return f, nil
	}
	enc := func(v any) (string, error) {
		f, ok := v.(float64)
		if !ok {
			return "", wrongType("float64", v)
		}
		return formatFloat(f), nil
	}
	return dec, enc
}

func intCodec() (decoder, encoder) {
	dec := func(p string) (any, error) {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidParameter, p)
		}
		return n, nil
	}
	enc := func(v any) (string, error) {
		n, ok := v.(int)
		if !ok {
			return "", wrongType("int", v)
		}
		return strconv.Itoa(n), nil
	}
	return dec, enc
}

func boolCodec() (decoder, encoder) {
	dec := func(p string) (any, error) {
		return p == "1", nil
	}
	return dec, encodeBool
}

func encodeBool(v any) (string, error) {
	b, ok := v.(bool)
	if !ok {
		return "", wrongType("bool", v)
	}
	if b {
		return "1", nil
	}
	return "0", nil
}

// weightCodec handles \b, which is either a toggle or an explicit weight.
func weightCodec() (decoder, encoder) {
	dec := func(p string) (any, error) {
		switch p {
		case "0":
			return false, nil
		case "1":
			return true, nil
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidParameter, p)
		}
		return FontWeight(n), nil
	}
	enc := func(v any) (string, error) {
		if w, ok := v.(FontWeight); ok {
			return strconv.Itoa(int(w)), nil
		}
		return encodeBool(v)
	}
	return dec, enc
}

func stringCodec() (decoder, encoder) {
	dec := func(p string) (any, error) {
		return p, nil
	}
	enc := func(v any) (string, error) {
		s, ok := v.(string)
		if !ok {
			return "", wrongType("string", v)
		}
		return s, nil
	}
	return dec, enc
}

func colorCodec() (decoder, encoder) {
	dec := func(p string) (any, error) {
		n, err := parseHex(p)
		if err != nil {
			return nil, err
		}
		return Color{BGR: uint32(n) & 0xFFFFFF}, nil
	}
	enc := func(v any) (string, error) {
		c, ok := v.(Color)
		if !ok {
			return "", wrongType("Color", v)
		}
		return fmt.Sprintf("&H%06X&", c.BGR&0xFFFFFF), nil
	}
	return dec, enc
}

func alphaCodec() (decoder, encoder) {
	dec := func(p string) (any, error) {
		n, err := parseHex(p)
		if err != nil {
			return nil, err
		}
		return Alpha(n), nil
	}
	enc := func(v any) (string, error) {
		a, ok := v.(Alpha)
		if !ok {
			return "", wrongType("Alpha", v)
		}
		return fmt.Sprintf("&H%02X&", uint8(a)), nil
	}
	return dec, enc
}

func alignmentCodec(legacy bool) (decoder, encoder) {
	dec := func(p string) (any, error) {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidParameter, p)
		}
		return Alignment{Value: n, Legacy: legacy}, nil
	}
	enc := func(v any) (string, error) {
		a, ok := v.(Alignment)
		if !ok {
			return "", wrongType("Alignment", v)
		}
		if a.Legacy != legacy {
			return "", fmt.Errorf("%w: alignment legacy flag mismatch", ErrInvalidValue)
		}
		return strconv.Itoa(a.Value), nil
	}
	return dec, enc
}

func wrapStyleCodec() (decoder, encoder) {
	dec := func(p string) (any, error) {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidParameter, p)
		}
		return WrapStyle(n), nil
	}
	enc := func(v any) (string, error) {
		w, ok := v.(WrapStyle)
		if !ok {
			return "", wrongType("WrapStyle", v)
		}
		return strconv.Itoa(int(w)), nil
	}
	return dec, enc
}

func resetCodec() (decoder, encoder) {
	dec := func(p string) (any, error) {
		return StyleReset{Style: p}, nil
	}
	enc := func(v any) (string, error) {
		r, ok := v.(StyleReset)
		if !ok {
			return "", wrongType("StyleReset", v)
		}
		return r.Style, nil
	}
	return dec, enc
}

// Function tags. Decoders receive the text between the parentheses and
// encoders return it without them.

var (
	rePosArgs   = argsPattern(reNum, reNum)
	reMoveArgs  = argsPattern(reNum, reNum, reNum, reNum)
	reMoveTimed = argsPattern(reNum, reNum, reNum, reNum, reInt, reInt)
	reFadArgs   = argsPattern(reInt, reInt)
	reFadeArgs  = argsPattern(reInt, reInt, reInt, reInt, reInt, reInt, reInt)
	reRectClip  = argsPattern(reInt, reInt, reInt, reInt)
	reVectClip  = regexp.MustCompile(`^\s*(?:(\d+)\s*,)?\s*([mnlbspc][mnlbspc0-9.\-\s]*?)\s*$`)
)

func positionCodec() (decoder, encoder) {
	dec := func(args string) (any, error) {
		parts, ok := splitArgs(rePosArgs, args)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidParameter, args)
		}
		f, err := parseFloats(parts)
		if err != nil {
			return nil, err
		}
		return Position{X: f[0], Y: f[1]}, nil
	}
	enc := func(v any) (string, error) {
		p, ok := v.(Position)
		if !ok {
			return "", wrongType("Position", v)
		}
		return joinFloats(p.X, p.Y), nil
	}
	return dec, enc
}

func moveCodec() (decoder, encoder) {
	dec := func(args string) (any, error) {
		if parts, ok := splitArgs(reMoveArgs, args); ok {
			f, err := parseFloats(parts)
			if err != nil {
				return nil, err
			}
			return Move{X1: f[0], Y1: f[1], X2: f[2], Y2: f[3]}, nil
		}
		parts, ok := splitArgs(reMoveTimed, args)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidParameter, args)
		}
		f, err := parseFloats(parts[:4])
		if err != nil {
			return nil, err
		}
		t, err := parseInts(parts[4:])
		if err != nil {
			return nil, err
		}
		return Move{X1: f[0], Y1: f[1], X2: f[2], Y2: f[3], T1: t[0], T2: t[1], Timed: true}, nil
	}
	enc := func(v any) (string, error) {
		m, ok := v.(Move)
		if !ok {
			return "", wrongType("Move", v)
		}
		s := joinFloats(m.X1, m.Y1, m.X2, m.Y2)
		if m.Timed {
			s += "," + joinInts(m.T1, m.T2)
		}
		return s, nil
	}
	return dec, enc
}

func fadCodec() (decoder, encoder) {
	dec := func(args string) (any, error) {
		parts, ok := splitArgs(reFadArgs, args)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidParameter, args)
		}
		n, err := parseInts(parts)
		if err != nil {
			return nil, err
		}
		return Fade{In: n[0], Out: n[1]}, nil
	}
	enc := func(v any) (string, error) {
		f, ok := v.(Fade)
		if !ok {
			return "", wrongType("Fade", v)
		}
		return joinInts(f.In, f.Out), nil
	}
	return dec, enc
}

func fadeCodec() (decoder, encoder) {
	dec := func(args string) (any, error) {
		parts, ok := splitArgs(reFadeArgs, args)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidParameter, args)
		}
		n, err := parseInts(parts)
		if err != nil {
			return nil, err
		}
		return FadeComplex{A1: n[0], A2: n[1], A3: n[2], T1: n[3], T2: n[4], T3: n[5], T4: n[6]}, nil
	}
	enc := func(v any) (string, error) {
		f, ok := v.(FadeComplex)
		if !ok {
			return "", wrongType("FadeComplex", v)
		}
		return joinInts(f.A1, f.A2, f.A3, f.T1, f.T2, f.T3, f.T4), nil
	}
	return dec, enc
}

func clipCodec() (decoder, encoder) {
	dec := func(args string) (any, error) {
		if parts, ok := splitArgs(reRectClip, args); ok {
			n, err := parseInts(parts)
			if err != nil {
				return nil, err
			}
			return RectClip{X1: n[0], Y1: n[1], X2: n[2], Y2: n[3]}, nil
		}
		parts, ok := splitArgs(reVectClip, args)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidParameter, args)
		}
		scale := 1
		if parts[0] != "" {
			n, err := strconv.Atoi(parts[0])
			if err != nil || n < 1 {
				return nil, fmt.Errorf("%w: clip scale %q", ErrInvalidParameter, parts[0])
			}
			scale = n
		}
		return VectorClip{Scale: scale, Drawing: parts[1]}, nil
	}
	enc := func(v any) (string, error) {
		switch c := v.(type) {
		case RectClip:
			return joinInts(c.X1, c.Y1, c.X2, c.Y2), nil
		case VectorClip:
			if c.Scale <= 1 {
				return c.Drawing, nil
			}
			return strconv.Itoa(c.Scale) + "," + c.Drawing, nil
		}
		return "", wrongType("RectClip or VectorClip", v)
	}
	return dec, enc
}

// transformCodec handles \t([t1,t2,][accel,]tags). The leading numeric
// arguments are everything before the first backslash.
func transformCodec() (decoder, encoder) {
	dec := func(args string) (any, error) {
		idx := strings.IndexByte(args, '\\')
		if idx < 0 {
			return nil, fmt.Errorf("%w: transform without tags", ErrInvalidParameter)
		}
		parts := strings.Split(args[:idx], ",")
		if strings.TrimSpace(parts[len(parts)-1]) != "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidParameter, args[:idx])
		}
		nums := parts[:len(parts)-1]
		for i := range nums {
			nums[i] = strings.TrimSpace(nums[i])
		}

		t := Transform{Tags: args[idx:]}
		switch len(nums) {
		case 0:
		case 1:
			f, err := parseFloats(nums)
			if err != nil {
				return nil, err
			}
			t.Accel, t.HasAccel = f[0], true
		case 2, 3:
			n, err := parseInts(nums[:2])
			if err != nil {
				return nil, err
			}
			t.T1, t.T2, t.Timed = n[0], n[1], true
			if len(nums) == 3 {
				f, err := parseFloats(nums[2:])
				if err != nil {
					return nil, err
				}
				t.Accel, t.HasAccel = f[0], true
			}
		default:
			return nil, fmt.Errorf("%w: too many transform arguments", ErrInvalidParameter)
		}
		return t, nil
	}
	enc := func(v any) (string, error) {
		t, ok := v.(Transform)
		if !ok {
			return "", wrongType("Transform", v)
		}
		if !strings.HasPrefix(t.Tags, `\`) {
			return "", fmt.Errorf("%w: transform tags must start with a backslash", ErrInvalidValue)
		}
		var sb strings.Builder
		if t.Timed {
			sb.WriteString(joinInts(t.T1, t.T2))
			sb.WriteByte(',')
		}
		if t.HasAccel {
			sb.WriteString(formatFloat(t.Accel))
			sb.WriteByte(',')
		}
		sb.WriteString(t.Tags)
		return sb.String(), nil
	}
	return dec, enc
}
