package png

import "github.com/pkg/errors"

// validateOrdering enforces the chunk ordering rules of spec §4.2,
// generalizing fumin-png's dsStart/dsSeenIHDR/dsSeenIDAT/dsSeenIEND stage
// machine to the fuller rule set named there. It records warnings on ctx
// (promoted to fatal errors in strict mode) and returns a fatal error for
// violations spec §7 classifies as Error-severity.
func (ctx *decodeContext) validateOrdering(chunks []Chunk) error {
	var (
		seenIHDR      bool
		seenPLTE      bool
		seenTRNS      bool
		seenIDAT      bool
		lastWasIDAT   bool
		seenIEND      bool
		seenBKGDOrSim bool
	)

	if len(chunks) == 0 || chunks[0].Type != ctIHDR {
		return errors.WithStack(FormatError("first chunk is not IHDR"))
	}

	for i, c := range chunks {
		if seenIEND {
			if err := ctx.warnf(c.Offset, "chunk %s appears after IEND and is ignored", c.Type); err != nil {
				return err
			}
			continue
		}

		if !c.CRCValid {
			if err := ctx.warnf(c.Offset, "CRC mismatch on chunk %s", c.Type); err != nil {
				return err
			}
		}

		switch c.Type {
		case ctIHDR:
			if seenIHDR {
				if err := ctx.warnf(c.Offset, "duplicate IHDR chunk"); err != nil {
					return err
				}
			}
			seenIHDR = true
			lastWasIDAT = false

		case ctPLTE:
			if seenPLTE {
				if err := ctx.warnf(c.Offset, "duplicate PLTE chunk"); err != nil {
					return err
				}
			}
			if seenIDAT {
				if err := ctx.warnf(c.Offset, "PLTE after first IDAT"); err != nil {
					return err
				}
			}
			if seenTRNS || seenBKGDOrSim {
				if err := ctx.warnf(c.Offset, "PLTE after tRNS/bKGD/hIST/sPLT"); err != nil {
					return err
				}
			}
			seenPLTE = true
			lastWasIDAT = false

		case ctTRNS:
			if seenTRNS {
				if err := ctx.warnf(c.Offset, "duplicate tRNS chunk"); err != nil {
					return err
				}
			}
			if seenIDAT {
				if err := ctx.warnf(c.Offset, "tRNS after first IDAT"); err != nil {
					return err
				}
			}
			seenTRNS = true
			lastWasIDAT = false

		case ctBKGD, ctHIST, ctSPLT:
			if seenIDAT {
				if err := ctx.warnf(c.Offset, "%s after first IDAT", c.Type); err != nil {
					return err
				}
			}
			seenBKGDOrSim = true
			lastWasIDAT = false

		case ctIDAT:
			if i > 0 && !lastWasIDAT && seenIDAT {
				return errors.WithStack(FormatError("non-consecutive IDAT chunks"))
			}
			seenIDAT = true
			lastWasIDAT = true

		case ctIEND:
			if c.DataLength != 0 {
				if err := ctx.warnf(c.Offset, "non-empty IEND"); err != nil {
					return err
				}
			}
			seenIEND = true
			lastWasIDAT = false

		default:
			lastWasIDAT = false
			if c.Type.isCritical() {
				return errors.WithStack(FormatError("unrecognized critical chunk " + c.Type.String()))
			}
			if !ctx.knownAncillary(c.Type) {
				ctx.infof("unknown ancillary chunk %s", c.Type)
			}
		}
	}

	if !seenIDAT {
		return errors.WithStack(FormatError("no IDAT chunk present"))
	}
	if !seenIEND {
		if err := ctx.warnf(chunks[len(chunks)-1].Offset, "stream does not end with IEND"); err != nil {
			return err
		}
	}
	return nil
}
