package png

// DecodeOptions controls decode behavior, spec §3.
type DecodeOptions struct {
	// StrictMode promotes every warning to a fatal error at the moment it
	// is emitted, per spec §7.
	StrictMode bool
	// Force32 forces 16-bit sources down to an 8-bit RGBA buffer, per spec
	// §3/§4.6.
	Force32 bool
	// ParseChunkTypes selects which ancillary chunk types get dispatched to
	// internal/ancillary decoders. nil or containing "*" means all known
	// types; otherwise it's an explicit allow-list of 4-character type
	// names (e.g. "tEXt").
	ParseChunkTypes []string
}

func (o DecodeOptions) allowsAll() bool {
	for _, t := range o.ParseChunkTypes {
		if t == "*" {
			return true
		}
	}
	return len(o.ParseChunkTypes) == 0
}

func (o DecodeOptions) allows(typ string) bool {
	if o.allowsAll() {
		return true
	}
	for _, t := range o.ParseChunkTypes {
		if t == typ {
			return true
		}
	}
	return false
}

// EncodeOptions controls encode behavior, spec §3/§6.
type EncodeOptions struct {
	BitDepth  uint8
	ColorType ColorType
	// AncillaryChunks are pre-framed (type, data) pairs to emit verbatim
	// between PLTE/tRNS and IEND, per spec §4.7 step 4.
	AncillaryChunks []AncillaryChunk
}

// AncillaryChunk is a caller-supplied chunk to emit during encode.
type AncillaryChunk struct {
	Type [4]byte
	Data []byte
}
