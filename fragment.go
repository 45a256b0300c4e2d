package circus

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/circus/chem"
)

// Fragment is a connected subgraph of a molecule: all atoms within Radius
// bond-hops of the root, plus every bond whose endpoints are both included.
//
// Exactly one of RootAtom/RootBond is valid; the other is -1.
type Fragment struct {
	// RootAtom is the root atom index, or -1 for a bond-rooted fragment.
	RootAtom int

	// RootBond is the root bond index, or -1 for an atom-rooted fragment.
	RootBond int

	// Radius is the bound, in bond-hops, used to enumerate this fragment.
	Radius int

	// Atoms holds the included atom indices, ascending.
	Atoms []int

	// Bonds holds the included bond indices, ascending.
	Bonds []int
}

// AtomFragments enumerates the fragments rooted at atom root of view, one per
// radius in [lower, upper]. Fragments are nested: the radius-r fragment is a
// subgraph of the radius-(r+1) fragment. A radius exceeding the diameter of
// the root's connected component yields that whole component.
//
// Complexity: O(V + E) traversal plus O(V log V) per emitted radius.
func AtomFragments(view chem.MoleculeView, root, lower, upper int) ([]Fragment, error) {
	if view == nil {
		return nil, ErrNilMolecule
	}
	if err := (Config{Lower: lower, Upper: upper}).validate(); err != nil {
		return nil, err
	}
	if root < 0 || root >= view.AtomCount() {
		return nil, fmt.Errorf("%w: atom %d of %d", ErrRootOutOfRange, root, view.AtomCount())
	}
	dist := hopDistances(view, []int{root}, upper)
	out := make([]Fragment, 0, upper-lower+1)
	for r := lower; r <= upper; r++ {
		frag := collect(view, dist, r)
		frag.RootAtom, frag.RootBond = root, -1
		out = append(out, frag)
	}
	return out, nil
}

// BondFragments enumerates the fragments rooted at bond root of view, one per
// radius in [lower, upper]. The radius-0 fragment is the two bonded atoms
// plus the bond itself; larger radii grow from both endpoints.
func BondFragments(view chem.MoleculeView, root, lower, upper int) ([]Fragment, error) {
	if view == nil {
		return nil, ErrNilMolecule
	}
	if err := (Config{Lower: lower, Upper: upper}).validate(); err != nil {
		return nil, err
	}
	if root < 0 || root >= view.BondCount() {
		return nil, fmt.Errorf("%w: bond %d of %d", ErrRootOutOfRange, root, view.BondCount())
	}
	bd := view.Bond(root)
	dist := hopDistances(view, []int{bd.From, bd.To}, upper)
	out := make([]Fragment, 0, upper-lower+1)
	for r := lower; r <= upper; r++ {
		frag := collect(view, dist, r)
		frag.RootAtom, frag.RootBond = -1, root
		frag.Radius = r
		out = append(out, frag)
	}
	return out, nil
}

// hopDistances runs a bounded breadth-first traversal from the seed atoms and
// returns the bond-hop distance of every atom reached within maxDepth.
func hopDistances(view chem.MoleculeView, seeds []int, maxDepth int) map[int]int {
	type item struct{ atom, depth int }
	dist := make(map[int]int, len(seeds))
	queue := make([]item, 0, len(seeds))
	for _, s := range seeds {
		dist[s] = 0
		queue = append(queue, item{atom: s, depth: 0})
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth == maxDepth {
			continue
		}
		for _, nbr := range view.Neighbors(cur.atom) {
			if _, seen := dist[nbr]; seen {
				continue
			}
			dist[nbr] = cur.depth + 1
			queue = append(queue, item{atom: nbr, depth: cur.depth + 1})
		}
	}
	return dist
}

// collect assembles the fragment of all atoms with distance <= r, plus every
// bond of view whose endpoints are both included.
func collect(view chem.MoleculeView, dist map[int]int, r int) Fragment {
	atoms := make([]int, 0, len(dist))
	for a, d := range dist {
		if d <= r {
			atoms = append(atoms, a)
		}
	}
	sort.Ints(atoms)

	in := make(map[int]bool, len(atoms))
	for _, a := range atoms {
		in[a] = true
	}
	bonds := make([]int, 0, len(atoms))
	seen := make(map[int]bool, len(atoms))
	for _, a := range atoms {
		for _, bi := range view.IncidentBonds(a) {
			if seen[bi] {
				continue
			}
			seen[bi] = true
			bd := view.Bond(bi)
			if in[bd.From] && in[bd.To] {
				bonds = append(bonds, bi)
			}
		}
	}
	sort.Ints(bonds)

	return Fragment{Radius: r, Atoms: atoms, Bonds: bonds}
}
