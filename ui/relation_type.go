package ui

import (
	"fmt"
	"strings"
)

// RelationType pairs an edge (or size) of the owner with one of the target.
type RelationType int

const (
	RelationLeftLeft RelationType = iota
	RelationLeftCenter
	RelationLeftRight
	RelationCenterCenter
	RelationRightLeft
	RelationRightCenter
	RelationRightRight

	RelationTopTop
	RelationTopMiddle
	RelationTopBottom
	RelationMiddleMiddle
	RelationBottomTop
	RelationBottomMiddle
	RelationBottomBottom

	RelationWidth
	RelationHeight

	RelationLeftExtLeft
	RelationLeftExtRight
	RelationRightExtLeft
	RelationRightExtRight
	RelationTopExtTop
	RelationTopExtBottom
	RelationBottomExtTop
	RelationBottomExtBottom

	// RelationSize adds RelationWidth and RelationHeight. It has no textual
	// form.
	RelationSize
)

var relationNames = [...]string{
	"left-left",
	"left-center",
	"left-right",
	"center-center",
	"right-left",
	"right-center",
	"right-right",
	"top-top",
	"top-middle",
	"top-bottom",
	"middle-middle",
	"bottom-top",
	"bottom-middle",
	"bottom-bottom",
	"width-width",
	"height-height",
	"leftext-left",
	"leftext-right",
	"rightext-left",
	"rightext-right",
	"topext-top",
	"topext-bottom",
	"bottomext-top",
	"bottomext-bottom",
}

func (rt RelationType) String() string {
	if rt >= 0 && int(rt) < len(relationNames) {
		return relationNames[rt]
	}
	if rt == RelationSize {
		return "size"
	}
	return fmt.Sprintf("RelationType(%d)", int(rt))
}

// horizontal reports whether rt acts on the x axis.
func (rt RelationType) horizontal() bool {
	return rt <= RelationRightRight || rt == RelationWidth ||
		(rt >= RelationLeftExtLeft && rt <= RelationRightExtRight)
}

// RelationDef is one entry of a side-pair list.
type RelationDef struct {
	Type    RelationType
	Percent bool
}

// ParseRelationType maps a side-pair name to its type. A single edge name
// means the same edge on both sides.
func ParseRelationType(s string) (RelationType, error) {
	if !strings.Contains(s, "-") {
		s = s + "-" + s
	}
	for i, name := range relationNames {
		if name == s {
			return RelationType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRelation, s)
}

// ParseSidePairs decodes a comma-joined side-pair list such as
// "left-left,right-right%". Empty tokens are skipped.
func ParseSidePairs(s string) ([]RelationDef, error) {
	var defs []RelationDef
	for _, tok := range strings.Split(s, ",") {
		if tok == "" {
			continue
		}
		def := RelationDef{}
		if strings.HasSuffix(tok, "%") {
			tok = tok[:len(tok)-1]
			def.Percent = true
		}
		rt, err := ParseRelationType(tok)
		if err != nil {
			return nil, err
		}
		def.Type = rt
		defs = append(defs, def)
	}
	return defs, nil
}

// FormatSidePairs is the inverse of ParseSidePairs. RelationSize is written
// as its width and height parts.
func FormatSidePairs(defs []RelationDef) string {
	var b strings.Builder
	for _, def := range defs {
		types := []RelationType{def.Type}
		if def.Type == RelationSize {
			types = []RelationType{RelationWidth, RelationHeight}
		}
		for _, rt := range types {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(rt.String())
			if def.Percent {
				b.WriteByte('%')
			}
		}
	}
	return b.String()
}
