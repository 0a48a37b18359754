package stagehand

import (
	"math"
	"strconv"
	"strings"
)

// TransformValues is a clip's composable 2D transform. It is carried inside
// the transform property of the clip's root element, encoded as
//
//	translate(Xpx, Ypx) scale(Sx, Sy) rotate(Ddeg)
//
// Rotation is in degrees, clockwise. The zero transform is not the identity;
// use IdentityTransform.
type TransformValues struct {
	TranslateX float64
	TranslateY float64
	ScaleX     float64
	ScaleY     float64
	Rotation   float64
}

// IdentityTransform returns the default transform: no translation, unit
// scale, no rotation.
func IdentityTransform() TransformValues {
	return TransformValues{ScaleX: 1, ScaleY: 1}
}

// IsIdentity reports whether v equals the identity transform.
func (v TransformValues) IsIdentity() bool {
	return v == IdentityTransform()
}

// ParseTransform parses the compact transform grammar. Parsing is tolerant,
// not strict validation: unrecognized or absent sub-expressions fall back to
// the default for that field and the function never fails. scale with a
// single argument means uniform scale.
func ParseTransform(s string) TransformValues {
	v := IdentityTransform()
	if args, ok := transformArgs(s, "translate"); ok {
		if len(args) >= 1 {
			if f, ok := parseUnitNumber(args[0]); ok {
				v.TranslateX = f
			}
		}
		if len(args) >= 2 {
			if f, ok := parseUnitNumber(args[1]); ok {
				v.TranslateY = f
			}
		}
	}
	if args, ok := transformArgs(s, "scale"); ok {
		if len(args) >= 1 {
			if f, ok := parseUnitNumber(args[0]); ok {
				v.ScaleX = f
				v.ScaleY = f
			}
		}
		if len(args) >= 2 {
			if f, ok := parseUnitNumber(args[1]); ok {
				v.ScaleY = f
			}
		}
	}
	if args, ok := transformArgs(s, "rotate"); ok {
		if len(args) >= 1 {
			if f, ok := parseUnitNumber(args[0]); ok {
				v.Rotation = f
			}
		}
	}
	return v
}

// FormatTransform encodes v into the transform grammar. Numbers are written
// with the minimal digits that survive a round trip, so
// ParseTransform(FormatTransform(v)) == v.
func FormatTransform(v TransformValues) string {
	return "translate(" + ftoa(v.TranslateX) + "px, " + ftoa(v.TranslateY) + "px) " +
		"scale(" + ftoa(v.ScaleX) + ", " + ftoa(v.ScaleY) + ") " +
		"rotate(" + ftoa(v.Rotation) + "deg)"
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// transformArgs extracts the comma-separated arguments of the named
// sub-expression, e.g. name "scale" over "scale(2, 3)" yields ["2", "3"].
// The name must not be immediately preceded by a letter, so "translate("
// never matches inside a longer identifier.
func transformArgs(s, name string) ([]string, bool) {
	for from := 0; from < len(s); {
		idx := strings.Index(s[from:], name+"(")
		if idx < 0 {
			return nil, false
		}
		idx += from
		if idx > 0 && isLetter(s[idx-1]) {
			from = idx + len(name) + 1
			continue
		}
		open := idx + len(name) + 1
		end := strings.IndexByte(s[open:], ')')
		if end < 0 {
			return nil, false
		}
		args := strings.Split(s[open:open+end], ",")
		for i := range args {
			args[i] = strings.TrimSpace(args[i])
		}
		return args, true
	}
	return nil, false
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// parseUnitNumber parses a number with an optional px/deg unit suffix.
func parseUnitNumber(s string) (float64, bool) {
	s = strings.TrimSuffix(s, "px")
	s = strings.TrimSuffix(s, "deg")
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// --- Partial transforms ---

// TransformPatch is a partial transform update. A nil field keeps the base
// value during Apply. Drag sessions emit patches; the scene merges them over
// the clip's previous transform as a whole-record replacement.
type TransformPatch struct {
	TranslateX *float64
	TranslateY *float64
	ScaleX     *float64
	ScaleY     *float64
	Rotation   *float64
}

// TranslatePatch builds the patch a translation session emits.
func TranslatePatch(x, y float64) TransformPatch {
	return TransformPatch{TranslateX: &x, TranslateY: &y}
}

// RotatePatch builds the patch a rotation session emits.
func RotatePatch(deg float64) TransformPatch {
	return TransformPatch{Rotation: &deg}
}

// ScalePatch builds the patch a scale session emits. Anchor-preserving
// scaling moves the element's center, so the translation updates together
// with the scale factors.
func ScalePatch(tx, ty, sx, sy float64) TransformPatch {
	return TransformPatch{TranslateX: &tx, TranslateY: &ty, ScaleX: &sx, ScaleY: &sy}
}

// Apply merges a patch over v field-wise; nil fields keep v's value.
func (v TransformValues) Apply(p TransformPatch) TransformValues {
	if p.TranslateX != nil {
		v.TranslateX = *p.TranslateX
	}
	if p.TranslateY != nil {
		v.TranslateY = *p.TranslateY
	}
	if p.ScaleX != nil {
		v.ScaleX = *p.ScaleX
	}
	if p.ScaleY != nil {
		v.ScaleY = *p.ScaleY
	}
	if p.Rotation != nil {
		v.Rotation = *p.Rotation
	}
	return v
}

// --- Rotation helpers ---

// rotatePoint rotates (x, y) about the origin by rad radians (clockwise in
// screen coordinates, where Y grows downward).
func rotatePoint(x, y, rad float64) (float64, float64) {
	sin, cos := math.Sincos(rad)
	return x*cos - y*sin, x*sin + y*cos
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }

func radToDeg(rad float64) float64 { return rad * 180 / math.Pi }
