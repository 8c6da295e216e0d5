package designfile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/OpenTraceLab/OpenTraceSynth/pkg/command"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/requirement"
)

// Document is a design file converted to requirement records.
type Document struct {
	Project *requirement.Project
	Blocks  []Block
}

// Block is one power supply block. HasPlan reports whether the file gave an
// explicit plan; otherwise callers fall back to rule-based generation.
type Block struct {
	Requirement requirement.PowerSupply
	Plan        []command.Command
	HasPlan     bool
}

// Error is a conversion error tied to a source position.
type Error struct {
	Pos lexer.Position
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("designfile: %s: %v", e.Pos, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func errorf(pos lexer.Position, format string, args ...any) error {
	return &Error{Pos: pos, Err: fmt.Errorf(format, args...)}
}

// LoadString parses and converts src. name is used in error positions.
func LoadString(name, src string) (*Document, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	f, err := p.ParseString(name, src)
	if err != nil {
		return nil, err
	}
	return Load(f)
}

// LoadFile parses and converts the design file at path.
func LoadFile(path string) (*Document, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	f, err := p.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return Load(f)
}

// Load converts a parsed file. It stops at the first error.
func Load(f *File) (*Document, error) {
	doc := &Document{Blocks: []Block{}}
	for _, entry := range f.Entries {
		switch {
		case entry.Project != nil:
			if doc.Project != nil {
				return nil, errorf(entry.Project.Pos, "duplicate project section")
			}
			proj, err := loadProject(entry.Project)
			if err != nil {
				return nil, err
			}
			doc.Project = proj
		case entry.Block != nil:
			blk, err := loadBlock(entry.Block)
			if err != nil {
				return nil, err
			}
			doc.Blocks = append(doc.Blocks, blk)
		}
	}
	return doc, nil
}

// quantity keys accepted per section, with their unit
var (
	projectUnits = map[string]string{
		"max_length":  "mm",
		"max_width":   "mm",
		"target_cost": "usd",
	}
	blockUnits = map[string]string{
		"input":   "V",
		"output":  "V",
		"current": "A",
	}
)

func checkQuantity(q *Quantity, units map[string]string, seen map[string]bool, section string) error {
	unit, ok := units[q.Key]
	if !ok {
		return errorf(q.Pos, "unknown %s field %q", section, q.Key)
	}
	if !strings.EqualFold(q.Unit, unit) {
		return errorf(q.Pos, "%s must be given in %s, got %q", q.Key, unit, q.Unit)
	}
	if seen[q.Key] {
		return errorf(q.Pos, "%s given more than once", q.Key)
	}
	seen[q.Key] = true
	return nil
}

func loadProject(decl *ProjectDecl) (*requirement.Project, error) {
	proj := &requirement.Project{Name: decl.Name}
	seen := map[string]bool{}
	for _, q := range decl.Fields {
		if err := checkQuantity(q, projectUnits, seen, "project"); err != nil {
			return nil, err
		}
		v := q.Value
		switch q.Key {
		case "max_length":
			proj.MaxLengthMM = &v
		case "max_width":
			proj.MaxWidthMM = &v
		case "target_cost":
			proj.TargetCostUSD = &v
		}
	}
	if err := proj.Check(); err != nil {
		return nil, &Error{Pos: decl.Pos, Err: err}
	}
	return proj, nil
}

func loadBlock(decl *BlockDecl) (Block, error) {
	blk := Block{Requirement: requirement.NewPowerSupply(decl.Name, 0, 0, 0)}
	seen := map[string]bool{}

	for _, field := range decl.Fields {
		switch {
		case field.Quantity != nil:
			q := field.Quantity
			if err := checkQuantity(q, blockUnits, seen, "block"); err != nil {
				return Block{}, err
			}
			switch q.Key {
			case "input":
				blk.Requirement.InputVoltage = q.Value
			case "output":
				blk.Requirement.OutputVoltage = q.Value
			case "current":
				blk.Requirement.MaxOutputCurrent = q.Value
			}
		case field.Plan != nil:
			if blk.HasPlan {
				return Block{}, errorf(field.Pos, "plan given more than once")
			}
			plan, err := command.ParsePlan(field.Plan)
			if err != nil {
				return Block{}, &Error{Pos: field.Pos, Err: err}
			}
			blk.Plan = plan
			blk.HasPlan = true
		case field.Protect != nil:
			blk.Requirement.ProtectionFeatures = append(blk.Requirement.ProtectionFeatures, field.Protect...)
		}
	}

	var missing []error
	for _, key := range []string{"input", "output", "current"} {
		if !seen[key] {
			missing = append(missing, fmt.Errorf("block %q is missing %s", decl.Name, key))
		}
	}
	if err := errors.Join(missing...); err != nil {
		return Block{}, &Error{Pos: decl.Pos, Err: err}
	}
	if err := blk.Requirement.Check(); err != nil {
		return Block{}, &Error{Pos: decl.Pos, Err: err}
	}
	return blk, nil
}
