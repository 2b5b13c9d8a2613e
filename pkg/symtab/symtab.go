// Package symtab is the assembler's symbol table: a flat name -> (kind,
// value) map populated by the front end and queried by the displacement
// resolver in package resolve.
package symtab

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Kind tags what a symbol's Value means.
type Kind int

const (
	// IntReg means Value is a 0-31 integer-register index.
	IntReg Kind = iota
	// FloatReg means Value is a 0-31 floating-point register index.
	// No float instructions are encoded by this assembler, but the
	// kind is tracked so a front end can still declare float registers.
	FloatReg
	// Mem means Value is a byte address. It is the only kind the
	// displacement resolver will accept as a branch/jump/load-address
	// target.
	Mem
)

func (k Kind) String() string {
	switch k {
	case IntReg:
		return "ireg"
	case FloatReg:
		return "freg"
	case Mem:
		return "mem"
	default:
		return "unknown"
	}
}

// Errors returned by Table methods. Wrap with fmt.Errorf("...: %w", ...)
// or errors.WithMessage when adding caller context.
var (
	ErrAlreadyDeclared = errors.New("symtab: symbol already declared")
	ErrUnknownSymbol   = errors.New("symtab: symbol not declared")
)

type entry struct {
	kind  Kind
	value uint64
}

// Table is a symbol table. The zero value is not usable; construct one
// with New. The back end that owns a Table runs single-threaded front to
// back, so Table does not synchronize its own state.
type Table struct {
	entries map[string]entry
	// order preserves declaration order for Dump, since Go maps don't.
	order []string
	rng   *rand.Rand
}

// New returns an empty symbol table whose internal name generator is
// seeded from the current time.
func New() *Table {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns an empty symbol table whose FreshInternalName output
// is deterministic for a given seed. Tests should always use this
// constructor.
func NewSeeded(seed int64) *Table {
	return &Table{
		entries: make(map[string]entry),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Declare inserts a new symbol with the given kind and a zero value. It
// fails if name is already declared.
func (t *Table) Declare(name string, kind Kind) error {
	if _, found := t.entries[name]; found {
		return fmt.Errorf("%w: %q", ErrAlreadyDeclared, name)
	}
	t.entries[name] = entry{kind: kind}
	t.order = append(t.order, name)
	return nil
}

// Update sets the value of an already-declared symbol. It fails if name
// is unknown.
func (t *Table) Update(name string, value uint64) error {
	e, found := t.entries[name]
	if !found {
		return fmt.Errorf("%w: %q", ErrUnknownSymbol, name)
	}
	e.value = value
	t.entries[name] = e
	return nil
}

// Lookup returns the stored value for name. ok is false when name has
// never been declared.
func (t *Table) Lookup(name string) (value uint64, ok bool) {
	e, found := t.entries[name]
	if !found {
		return 0, false
	}
	return e.value, true
}

// KindOf returns the declared kind for name. ok is false when name has
// never been declared.
func (t *Table) KindOf(name string) (kind Kind, ok bool) {
	e, found := t.entries[name]
	if !found {
		return 0, false
	}
	return e.kind, true
}

const internalNameLetters = "abcdefghijklmnopqrstuvwxyz"

// FreshInternalName returns "__internal_" followed by 9 uniformly random
// lowercase letters. The front end uses this to name control-flow
// reconvergence points (join nodes) it invents on the fly. Collisions are
// not checked for: the odds of a 9-letter suffix colliding within one
// program are negligible, and any collision will surface later as a
// normal ErrAlreadyDeclared from Declare.
func (t *Table) FreshInternalName() string {
	buf := make([]byte, 9)
	for i := range buf {
		buf[i] = internalNameLetters[t.rng.Intn(len(internalNameLetters))]
	}
	return "__internal_" + string(buf)
}

// Dump logs every symbol table entry at info level, in declaration
// order, for diagnostic use.
func (t *Table) Dump() {
	logrus.Info("symbol table entries:")
	for i, name := range t.order {
		e := t.entries[name]
		if e.kind == Mem {
			logrus.WithFields(logrus.Fields{
				"index": i, "name": name, "kind": e.kind,
			}).Infof("0x%012x", e.value)
		} else {
			logrus.WithFields(logrus.Fields{
				"index": i, "name": name, "kind": e.kind,
			}).Infof("$x%d", e.value)
		}
	}
}
