// Fragment canonicalization: maps a Fragment to a key invariant under the
// fragment's internal atom numbering.
//
// Canonical ordering rule (documented for cross-implementation key
// compatibility): atoms are partitioned by iterative refinement on a
// signature of (element, formal charge, aromaticity, degree in the parent
// molecule, sorted multiset of (bond order, neighbor class)); while any
// class holds more than one atom, each member of the smallest such class is
// individualized in turn, refinement is re-run, and the lexicographically
// smallest resulting serialization is kept. Full key strings are used; no
// truncated hashing, so equal keys imply label-isomorphic fragments.
//
// The parent-molecule degree acts as an attachment-point marker: a terminal
// and a middle carbon produce distinct radius-0 keys even though the bare
// one-atom subgraphs are isomorphic.

package circus

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/circus/chem"
)

// CanonicalKey returns the canonical key of frag within view. Two fragments
// produce the same key iff they are topologically and label-isomorphic
// (including the attachment-degree marker described above). The empty
// fragment canonicalizes to the empty key.
//
// Complexity: near-linear refinement for typical labeled fragments;
// worst case exponential in the size of unresolved symmetric classes.
func CanonicalKey(view chem.MoleculeView, frag Fragment) string {
	n := len(frag.Atoms)
	if n == 0 {
		return ""
	}
	c := newCanonizer(view, frag)
	return c.search(c.refine(rankStrings(c.base)))
}

// halfBond is one directed half of a fragment bond in local numbering.
type halfBond struct {
	nbr   int
	order chem.BondOrder
}

// canonizer holds the fragment re-expressed in local atom numbering.
type canonizer struct {
	base  []string   // per-atom invariant signature
	adj   [][]halfBond
	bonds [][3]int // local u, local v, order
}

func newCanonizer(view chem.MoleculeView, frag Fragment) *canonizer {
	n := len(frag.Atoms)
	local := make(map[int]int, n)
	for li, ai := range frag.Atoms {
		local[ai] = li
	}
	c := &canonizer{
		base:  make([]string, n),
		adj:   make([][]halfBond, n),
		bonds: make([][3]int, 0, len(frag.Bonds)),
	}
	for li, ai := range frag.Atoms {
		a := view.Atom(ai)
		arom := "0"
		if a.Aromatic {
			arom = "1"
		}
		// Degree is taken in the parent molecule, not the fragment.
		c.base[li] = a.Element + "|" + strconv.Itoa(a.Charge) + "|" + arom +
			"|" + strconv.Itoa(len(view.IncidentBonds(ai)))
	}
	for _, bi := range frag.Bonds {
		bd := view.Bond(bi)
		u, v := local[bd.From], local[bd.To]
		c.adj[u] = append(c.adj[u], halfBond{nbr: v, order: bd.Order})
		c.adj[v] = append(c.adj[v], halfBond{nbr: u, order: bd.Order})
		c.bonds = append(c.bonds, [3]int{u, v, int(bd.Order)})
	}
	return c
}

// refine iterates class assignment until the partition is stable. Signatures
// include the atom's own class, so classes only ever split; the loop
// terminates in at most n rounds.
func (c *canonizer) refine(classes []int) []int {
	n := len(classes)
	for {
		sigs := make([]string, n)
		for i := 0; i < n; i++ {
			nbrs := make([]string, 0, len(c.adj[i]))
			for _, hb := range c.adj[i] {
				nbrs = append(nbrs, strconv.Itoa(int(hb.order))+":"+strconv.Itoa(classes[hb.nbr]))
			}
			sort.Strings(nbrs)
			sigs[i] = c.base[i] + "#" + strconv.Itoa(classes[i]) + "#" + strings.Join(nbrs, ",")
		}
		next := rankStrings(sigs)
		if equalInts(next, classes) {
			return classes
		}
		classes = next
	}
}

// search resolves remaining ties by individualization: every member of the
// smallest non-singleton class is promoted in turn and the minimal
// serialization over the branches is returned.
func (c *canonizer) search(classes []int) string {
	target, found := -1, false
	count := make(map[int]int, len(classes))
	for _, cl := range classes {
		count[cl]++
	}
	for _, cl := range classes {
		if count[cl] > 1 && (!found || cl < target) {
			target, found = cl, true
		}
	}
	if !found {
		return c.serialize(classes)
	}
	best := ""
	for i, cl := range classes {
		if cl != target {
			continue
		}
		ind := make([]int, len(classes))
		for j, cj := range classes {
			ind[j] = cj * 2
		}
		ind[i]--
		if s := c.search(c.refine(ind)); best == "" || s < best {
			best = s
		}
	}
	return best
}

// serialize emits the key for a discrete partition: atom signatures in
// canonical position order, then bonds as position pairs with order symbols,
// sorted.
func (c *canonizer) serialize(classes []int) string {
	n := len(classes)
	atoms := make([]string, n)
	for i, pos := range classes {
		atoms[pos] = c.base[i]
	}
	bonds := make([]string, 0, len(c.bonds))
	for _, b := range c.bonds {
		u, v := classes[b[0]], classes[b[1]]
		if u > v {
			u, v = v, u
		}
		bonds = append(bonds, fmt.Sprintf("%d-%d%s", u, v, chem.BondOrder(b[2])))
	}
	sort.Strings(bonds)
	return strings.Join(atoms, ";") + "//" + strings.Join(bonds, ";")
}

// rankStrings assigns each string the index of its value in the sorted set
// of distinct values.
func rankStrings(sigs []string) []int {
	uniq := make([]string, 0, len(sigs))
	seen := make(map[string]bool, len(sigs))
	for _, s := range sigs {
		if !seen[s] {
			seen[s] = true
			uniq = append(uniq, s)
		}
	}
	sort.Strings(uniq)
	rank := make(map[string]int, len(uniq))
	for i, s := range uniq {
		rank[s] = i
	}
	out := make([]int, len(sigs))
	for i, s := range sigs {
		out[i] = rank[s]
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
