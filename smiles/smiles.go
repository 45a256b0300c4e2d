// Package smiles provides a thin parser and writer for a practical subset of
// the SMILES line notation, producing chem.Molecule values for the
// descriptor engine. It is an external-collaborator surface, not part of the
// engine's design scope: organic-subset atoms, bracket atoms with charge and
// explicit hydrogen counts, bond symbols, branches, and ring closures.
// Stereochemistry and isotopes are not supported.
package smiles

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/circus/chem"
)

// Sentinel errors for SMILES parsing.
var (
	// ErrSyntax indicates an unrecognized token.
	ErrSyntax = errors.New("smiles: syntax error")

	// ErrUnclosedRing indicates a ring-closure digit without a partner.
	ErrUnclosedRing = errors.New("smiles: unclosed ring closure")

	// ErrUnclosedBranch indicates unbalanced parentheses.
	ErrUnclosedBranch = errors.New("smiles: unbalanced branch")
)

// organic lists the subset elements writable without brackets, two-letter
// symbols first so the scanner matches them greedily.
var organic = []string{"Cl", "Br", "B", "C", "N", "O", "P", "S", "F", "I"}

// valence holds the default valence used to derive implicit hydrogen counts.
var valence = map[string]int{
	"B": 3, "C": 4, "N": 3, "O": 2, "P": 3, "S": 2,
	"F": 1, "Cl": 1, "Br": 1, "I": 1,
}

// ringRef is a half-open ring closure awaiting its partner.
type ringRef struct {
	atom  int
	order chem.BondOrder
}

// parser walks one SMILES string.
type parser struct {
	src     string
	pos     int
	b       *chem.Builder
	prev    int              // last atom, -1 at a fresh component
	stack   []int            // branch return points
	pending chem.BondOrder   // explicit bond symbol for the next bond, 0 if none
	rings   map[int]ringRef  // ring-closure number → open half
	arom    []bool           // per added atom
	bondSum []float64        // per added atom, aromatic counts 1.5
	explH   []bool           // bracket atoms carry explicit H counts
}

// Parse converts a SMILES string into a Molecule. Implicit hydrogens are
// derived from default valences for organic-subset atoms; bracket atoms use
// their explicit H count.
func Parse(s string) (*chem.Molecule, error) {
	p := &parser{
		src:   s,
		b:     chem.NewBuilder(),
		prev:  -1,
		rings: make(map[int]ringRef),
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.finish()
}

func (p *parser) run() error {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '-':
			p.pending = chem.Single
			p.pos++
		case c == '=':
			p.pending = chem.Double
			p.pos++
		case c == '#':
			p.pending = chem.Triple
			p.pos++
		case c == ':':
			p.pending = chem.AromaticBond
			p.pos++
		case c == '.':
			if p.pending != 0 {
				return fmt.Errorf("%w: bond before dot at offset %d", ErrSyntax, p.pos)
			}
			p.prev = -1
			p.pos++
		case c == '(':
			if p.prev < 0 {
				return fmt.Errorf("%w: branch before any atom at offset %d", ErrSyntax, p.pos)
			}
			p.stack = append(p.stack, p.prev)
			p.pos++
		case c == ')':
			if len(p.stack) == 0 {
				return fmt.Errorf("%w: stray ')' at offset %d", ErrUnclosedBranch, p.pos)
			}
			p.prev = p.stack[len(p.stack)-1]
			p.stack = p.stack[:len(p.stack)-1]
			p.pos++
		case c >= '0' && c <= '9':
			if err := p.ringClosure(int(c - '0')); err != nil {
				return err
			}
			p.pos++
		case c == '%':
			if p.pos+2 >= len(p.src) || !isDigit(p.src[p.pos+1]) || !isDigit(p.src[p.pos+2]) {
				return fmt.Errorf("%w: bad %%nn ring closure at offset %d", ErrSyntax, p.pos)
			}
			n := int(p.src[p.pos+1]-'0')*10 + int(p.src[p.pos+2]-'0')
			if err := p.ringClosure(n); err != nil {
				return err
			}
			p.pos += 3
		case c == '[':
			if err := p.bracketAtom(); err != nil {
				return err
			}
		default:
			if err := p.organicAtom(); err != nil {
				return err
			}
		}
	}
	if len(p.stack) != 0 {
		return fmt.Errorf("%w: %d branch(es) left open", ErrUnclosedBranch, len(p.stack))
	}
	if len(p.rings) != 0 {
		return fmt.Errorf("%w: %d closure(s) left open", ErrUnclosedRing, len(p.rings))
	}
	return nil
}

// organicAtom scans one unbracketed organic-subset atom at the cursor.
func (p *parser) organicAtom() error {
	rest := p.src[p.pos:]
	for _, sym := range organic {
		if strings.HasPrefix(rest, sym) {
			p.addAtom(sym, 0, false, 0, false)
			p.pos += len(sym)
			return nil
		}
	}
	// aromatic lowercase subset
	c := rest[0]
	if strings.ContainsRune("bcnops", rune(c)) {
		p.addAtom(strings.ToUpper(string(c)), 0, true, 0, false)
		p.pos++
		return nil
	}
	return fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, c, p.pos)
}

// bracketAtom scans one [element(H count)(charge)] atom at the cursor.
func (p *parser) bracketAtom() error {
	start := p.pos
	end := strings.IndexByte(p.src[p.pos:], ']')
	if end < 0 {
		return fmt.Errorf("%w: unterminated bracket at offset %d", ErrSyntax, start)
	}
	body := p.src[p.pos+1 : p.pos+end]
	p.pos += end + 1

	i := 0
	if i >= len(body) || !isLetter(body[i]) {
		return fmt.Errorf("%w: empty bracket atom at offset %d", ErrSyntax, start)
	}
	aromatic := body[i] >= 'a' && body[i] <= 'z'
	el := strings.ToUpper(string(body[i]))
	i++
	if !aromatic && i < len(body) && body[i] >= 'a' && body[i] <= 'z' {
		el += string(body[i])
		i++
	}
	hydrogens := 0
	if i < len(body) && body[i] == 'H' {
		i++
		hydrogens = 1
		if i < len(body) && isDigit(body[i]) {
			hydrogens = int(body[i] - '0')
			i++
		}
	}
	charge := 0
	for i < len(body) && (body[i] == '+' || body[i] == '-') {
		sign := 1
		if body[i] == '-' {
			sign = -1
		}
		i++
		if i < len(body) && isDigit(body[i]) {
			charge += sign * int(body[i]-'0')
			i++
		} else {
			charge += sign
		}
	}
	if i != len(body) {
		return fmt.Errorf("%w: trailing %q in bracket at offset %d", ErrSyntax, body[i:], start)
	}
	p.addAtom(el, charge, aromatic, hydrogens, true)
	return nil
}

// addAtom appends an atom and bonds it to the previous one.
func (p *parser) addAtom(el string, charge int, aromatic bool, hydrogens int, explicit bool) {
	idx := p.b.AddAtom(chem.Atom{Element: el, Charge: charge, Aromatic: aromatic, Hydrogens: hydrogens})
	p.arom = append(p.arom, aromatic)
	p.bondSum = append(p.bondSum, 0)
	p.explH = append(p.explH, explicit)
	if p.prev >= 0 {
		p.bond(p.prev, idx, p.takePending(p.prev, idx))
	}
	p.prev = idx
}

// takePending consumes the pending bond symbol, defaulting to aromatic
// between two aromatic atoms and single otherwise.
func (p *parser) takePending(u, v int) chem.BondOrder {
	order := p.pending
	p.pending = 0
	if order == 0 {
		if p.arom[u] && p.arom[v] {
			return chem.AromaticBond
		}
		return chem.Single
	}
	return order
}

// ringClosure opens closure n at the current atom or closes it against the
// recorded half.
func (p *parser) ringClosure(n int) error {
	if p.prev < 0 {
		return fmt.Errorf("%w: closure %d before any atom at offset %d", ErrSyntax, n, p.pos)
	}
	if ref, open := p.rings[n]; open {
		delete(p.rings, n)
		// the bond symbol may sit on either side of the closure pair
		order := p.pending
		p.pending = 0
		if order == 0 {
			order = ref.order
		}
		if order == 0 {
			if p.arom[ref.atom] && p.arom[p.prev] {
				order = chem.AromaticBond
			} else {
				order = chem.Single
			}
		}
		p.bond(ref.atom, p.prev, order)
		return nil
	}
	p.rings[n] = ringRef{atom: p.prev, order: p.pending}
	p.pending = 0
	return nil
}

// bond records a bond and accumulates valence usage on both endpoints.
func (p *parser) bond(u, v int, order chem.BondOrder) {
	p.b.AddBond(u, v, order)
	contrib := map[chem.BondOrder]float64{
		chem.Single: 1, chem.Double: 2, chem.Triple: 3, chem.AromaticBond: 1.5,
	}[order]
	p.bondSum[u] += contrib
	p.bondSum[v] += contrib
}

// finish derives implicit hydrogen counts and builds the molecule. The first
// builder error (e.g. a duplicate ring-closure bond) surfaces here.
func (p *parser) finish() (*chem.Molecule, error) {
	m, err := p.b.Build()
	if err != nil {
		return nil, err
	}
	// Rebuild with hydrogen counts for organic-subset atoms; bracket atoms
	// keep their explicit count.
	b := chem.NewBuilder()
	for i := 0; i < m.AtomCount(); i++ {
		a := m.Atom(i)
		if !p.explH[i] {
			used := int(p.bondSum[i] + 0.5)
			if def, ok := valence[a.Element]; ok && def > used {
				a.Hydrogens = def - used
			} else {
				a.Hydrogens = 0
			}
		}
		b.AddAtom(a)
	}
	for i := 0; i < m.BondCount(); i++ {
		bd := m.Bond(i)
		b.AddBond(bd.From, bd.To, bd.Order)
	}
	return b.Build()
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
