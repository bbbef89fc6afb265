// tags.go lists every override tag the parser recognizes.
// Adding a tag = adding one entry here. Entry order is the canonical output order.
package asstext

func funcTag(name string, cat Category, prec Precedence, group string, codec func() (decoder, encoder)) *TagDefinition {
	dec, enc := codec()
	return &TagDefinition{
		Name:       name,
		Category:   cat,
		Precedence: prec,
		Group:      group,
		Function:   true,
		decode:     dec,
		format:     enc,
	}
}

func simpleTag(name string, cat Category, prec Precedence, group, pattern string, codec func() (decoder, encoder)) *TagDefinition {
	dec, enc := codec()
	return &TagDefinition{
		Name:       name,
		Category:   cat,
		Precedence: prec,
		Group:      group,
		pattern:    newPattern(pattern),
		decode:     dec,
		format:     enc,
	}
}

// inlineTag is an inline simple tag; a bare name reverts to the style value.
func inlineTag(name, pattern string, codec func() (decoder, encoder)) *TagDefinition {
	d := simpleTag(name, Inline, LastWins, "", pattern, codec)
	d.emptyDefault = true
	return d
}

func floats(valid func(float64) bool) func() (decoder, encoder) {
	return func() (decoder, encoder) { return floatCodec(valid) }
}

func legacyAlignment() (decoder, encoder) { return alignmentCodec(true) }
func numpadAlignment() (decoder, encoder) { return alignmentCodec(false) }

func positive(f float64) bool { return f > 0 }

var definitions = []*TagDefinition{
	// Event level
	funcTag("pos", EventLevel, FirstWins, "position", positionCodec),
	funcTag("move", EventLevel, FirstWins, "position", moveCodec),
	funcTag("org", EventLevel, FirstWins, "", positionCodec),
	funcTag("fad", EventLevel, FirstWins, "fade", fadCodec),
	funcTag("fade", EventLevel, FirstWins, "fade", fadeCodec),
	funcTag("clip", EventLevel, LastWins, "clip", clipCodec),
	funcTag("iclip", EventLevel, LastWins, "clip", clipCodec),
	simpleTag("an", EventLevel, FirstWins, "alignment", `[1-9]`, numpadAlignment),
	simpleTag("a", EventLevel, FirstWins, "alignment", `1[01]|[1-35-79]`, legacyAlignment),
	simpleTag("q", EventLevel, LastWins, "", `[0-3]`, wrapStyleCodec),

	// Inline
	simpleTag("r", Inline, LastWins, "", `[^\\]*`, resetCodec),
	inlineTag("fn", `[^\\]+`, stringCodec),
	inlineTag("fs", reUNum, floats(positive)),
	inlineTag("fscx", reUNum, floats(nil)),
	inlineTag("fscy", reUNum, floats(nil)),
	inlineTag("fsp", reNum, floats(nil)),
	inlineTag("fe", reUInt, intCodec),
	inlineTag("b", `[01]|[1-9]00`, weightCodec),
	inlineTag("i", `[01]`, boolCodec),
	inlineTag("u", `[01]`, boolCodec),
	inlineTag("s", `[01]`, boolCodec),
	inlineTag("bord", reUNum, floats(nil)),
	inlineTag("xbord", reUNum, floats(nil)),
	inlineTag("ybord", reUNum, floats(nil)),
	inlineTag("shad", reUNum, floats(nil)),
	inlineTag("xshad", reNum, floats(nil)),
	inlineTag("yshad", reNum, floats(nil)),
	inlineTag("be", reUInt, intCodec),
	inlineTag("blur", reUNum, floats(nil)),
	inlineTag("c", reHex, colorCodec),
	inlineTag("1c", reHex, colorCodec),
	inlineTag("2c", reHex, colorCodec),
	inlineTag("3c", reHex, colorCodec),
	inlineTag("4c", reHex, colorCodec),
	inlineTag("alpha", reHex2, alphaCodec),
	inlineTag("1a", reHex2, alphaCodec),
	inlineTag("2a", reHex2, alphaCodec),
	inlineTag("3a", reHex2, alphaCodec),
	inlineTag("4a", reHex2, alphaCodec),
	inlineTag("frx", reNum, floats(nil)),
	inlineTag("fry", reNum, floats(nil)),
	inlineTag("frz", reNum, floats(nil)),
	inlineTag("fr", reNum, floats(nil)),
	inlineTag("fax", reNum, floats(nil)),
	inlineTag("fay", reNum, floats(nil)),
	simpleTag("k", Inline, LastWins, "", reUInt, intCodec),
	simpleTag("K", Inline, LastWins, "", reUInt, intCodec),
	simpleTag("kf", Inline, LastWins, "", reUInt, intCodec),
	simpleTag("ko", Inline, LastWins, "", reUInt, intCodec),
	simpleTag("kt", Inline, LastWins, "", reUInt, intCodec),
	simpleTag("p", Inline, LastWins, "", reUInt, intCodec),
	simpleTag("pbo", Inline, LastWins, "", reInt, intCodec),
	funcTag("t", Inline, LastWins, "", transformCodec),
}
