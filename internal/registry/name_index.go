package registry

import (
	"strings"

	"github.com/google/btree"
)

type nameKey struct {
	name string
	id   string
}

func lessNameKey(a, b nameKey) bool {
	if a.name != b.name {
		return a.name < b.name
	}
	return a.id < b.id
}

// nameIndex orders entity ids by folded name for lookups and prefix scans
type nameIndex struct {
	tree *btree.BTreeG[nameKey]
}

func newNameIndex() *nameIndex {
	return &nameIndex{tree: btree.NewG[nameKey](16, lessNameKey)}
}

func (x *nameIndex) insert(name, id string) {
	x.tree.ReplaceOrInsert(nameKey{name: Fold(name), id: Fold(id)})
}

func (x *nameIndex) remove(name, id string) {
	x.tree.Delete(nameKey{name: Fold(name), id: Fold(id)})
}

func (x *nameIndex) has(name string) bool {
	folded := Fold(name)
	found := false
	x.tree.AscendGreaterOrEqual(nameKey{name: folded}, func(k nameKey) bool {
		found = k.name == folded
		return false
	})
	return found
}

// withPrefix returns folded ids whose name starts with prefix, ordered by name
func (x *nameIndex) withPrefix(prefix string) []string {
	folded := Fold(prefix)
	var ids []string
	x.tree.AscendGreaterOrEqual(nameKey{name: folded}, func(k nameKey) bool {
		if !strings.HasPrefix(k.name, folded) {
			return false
		}
		ids = append(ids, k.id)
		return true
	})
	return ids
}
