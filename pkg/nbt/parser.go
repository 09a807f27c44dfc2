package nbt

import (
	"bufio"
	"io"
	"strings"
)

// Visitor receives nodes as the parser walks a tag tree. Compound and list
// callbacks return a continue-signal: false aborts the whole traversal
// immediately and the parse returns normally.
type Visitor interface {
	// VisitCompound is invoked with a compound's name and its materialized
	// immediate contents, before any of its children are visited.
	VisitCompound(name string, compound *Tag) bool

	// VisitList is invoked for each list encountered as a compound child.
	VisitList(name string, list *Tag) bool

	// HandleError is invoked at most once when decoding fails.
	HandleError(err error)
}

// VisitorFuncs adapts plain functions to the Visitor interface. Nil
// callbacks default to continuing the walk and absorbing errors.
type VisitorFuncs struct {
	Compound func(name string, compound *Tag) bool
	List     func(name string, list *Tag) bool
	Error    func(err error)
}

func (v VisitorFuncs) VisitCompound(name string, compound *Tag) bool {
	if v.Compound == nil {
		return true
	}
	return v.Compound(name, compound)
}

func (v VisitorFuncs) VisitList(name string, list *Tag) bool {
	if v.List == nil {
		return true
	}
	return v.List(name, list)
}

func (v VisitorFuncs) HandleError(err error) {
	if v.Error != nil {
		v.Error(err)
	}
}

// Parser walks one serialized tag tree from a byte source. A parser is
// used by exactly one caller at a time; independent parsers over separate
// sources may run in parallel.
type Parser struct {
	src io.ReadCloser
	r   *bufio.Reader
}

// NewParser creates a parser over src, positioned at the start of one
// serialized tag tree. The source is always closed when Parse returns,
// whether traversal succeeded, stopped early, or failed.
func NewParser(src io.ReadCloser) *Parser {
	return &Parser{
		src: src,
		r:   bufio.NewReaderSize(src, 8192),
	}
}

// Parse reads the root node and performs a depth-first pre-order walk,
// invoking the visitor's callbacks. Decode faults are delivered once via
// HandleError and never escape; the byte source is closed on every exit
// path.
func (p *Parser) Parse(v Visitor) {
	defer p.src.Close()

	root, err := readNamedTag(p.r, 0)
	if err != nil {
		v.HandleError(err)
		return
	}

	if root.Type != TypeCompound {
		v.HandleError(decodeErr("parse", root.Type, root.Name, ErrNotCompound))
		return
	}

	p.walkCompound(root.Name, root, v)
}

// walkCompound visits one compound and then its children, threading the
// continue-signal through every step.
func (p *Parser) walkCompound(name string, compound *Tag, v Visitor) bool {
	if !v.VisitCompound(name, compound) {
		return false
	}

	for _, child := range compound.Children {
		switch child.Type {
		case TypeCompound:
			if !p.walkCompound(child.Name, child, v) {
				return false
			}
		case TypeList:
			if !v.VisitList(child.Name, child) {
				return false
			}
		}
	}

	return true
}

// ParseSections walks the tree and forwards compounds following the chunk
// section naming convention to handler.
func (p *Parser) ParseSections(handler func(section *Tag)) {
	p.Parse(VisitorFuncs{
		Compound: func(name string, compound *Tag) bool {
			if isSectionName(name) {
				handler(compound)
			}
			return true
		},
	})
}

func isSectionName(name string) bool {
	return name == "sections" || strings.HasPrefix(name, "section_")
}

// ExtractPath matches compound names along a dotted path at increasing
// depth in traversal order. On a full match traversal stops and the
// matched compound's contents are returned; if the source ends without a
// full match the result is absent. The source is closed either way.
func ExtractPath(src io.ReadCloser, path string) (*Tag, bool) {
	parts := strings.Split(path, ".")

	var result *Tag
	depth := 0

	NewParser(src).Parse(VisitorFuncs{
		Compound: func(name string, compound *Tag) bool {
			if depth < len(parts) && parts[depth] == name {
				depth++
				if depth == len(parts) {
					result = compound
					return false
				}
			}
			return true
		},
	})

	if result == nil {
		return nil, false
	}
	return result, true
}
