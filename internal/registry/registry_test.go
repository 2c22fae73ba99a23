package registry

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coopstore/coopstore/internal/domain"
)

func TestMemberRegistryIDsAreNeverReused(t *testing.T) {
	r := NewMemberRegistry()
	first := r.Add(&domain.Member{Name: "Alice"})
	second := r.Add(&domain.Member{Name: "Bob"})
	assert.Equal(t, "M-1", first)
	assert.Equal(t, "M-2", second)

	require.True(t, r.Remove(second))
	assert.False(t, r.Remove(second), "second removal reports not found")

	third := r.Add(&domain.Member{Name: "Carol"})
	assert.Equal(t, "M-3", third)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, 4, r.Next())
}

func TestMemberRegistryLookupIgnoresCase(t *testing.T) {
	r := NewMemberRegistry()
	id := r.Add(&domain.Member{Name: "Alice"})

	m, ok := r.Get("m-1")
	require.True(t, ok)
	assert.Equal(t, id, m.ID)

	_, ok = r.Get("M-999")
	assert.False(t, ok)
}

func TestMemberRegistryKeepsInsertionOrder(t *testing.T) {
	r := NewMemberRegistry()
	for _, name := range []string{"Zed", "Amy", "Moe"} {
		r.Add(&domain.Member{Name: name})
	}
	r.Remove("M-2")

	var names []string
	for _, m := range r.All() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Zed", "Moe"}, names)

	m, ok := r.Get("M-3")
	require.True(t, ok, "index must be rebuilt after removal")
	assert.Equal(t, "Moe", m.Name)
}

func TestMemberRegistrySearchAndRename(t *testing.T) {
	r := NewMemberRegistry()
	r.Add(&domain.Member{Name: "Alice"})
	r.Add(&domain.Member{Name: "alfred"})
	r.Add(&domain.Member{Name: "Bob"})

	found := r.SearchByName("AL")
	require.Len(t, found, 2)
	assert.Equal(t, "alfred", found[0].Name)
	assert.Equal(t, "Alice", found[1].Name)

	require.True(t, r.Rename("M-3", "Albert"))
	assert.Len(t, r.SearchByName("al"), 3)
	assert.Empty(t, r.SearchByName("bo"))
	assert.False(t, r.Rename("M-42", "Nobody"))
}

func TestRestoreMemberRegistry(t *testing.T) {
	saved := []*domain.Member{{ID: "M-1", Name: "Alice"}, {ID: "M-4", Name: "Dan"}}

	r, err := RestoreMemberRegistry(saved, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, r.Next(), "counter moves past restored ids")
	assert.Equal(t, "M-5", r.Add(&domain.Member{Name: "Eve"}))

	_, err = RestoreMemberRegistry([]*domain.Member{{ID: "M-1"}, {ID: "m-1"}}, 2)
	assert.Error(t, err)
}

func TestProductRegistryNamesAreUniqueAnyCase(t *testing.T) {
	r := NewProductRegistry()
	_, err := r.Add(domain.NewProduct("P-1", "Milk", decimal.RequireFromString("1.99"), 3, 5))
	require.NoError(t, err)

	assert.True(t, r.ExistsByName("MILK"))
	assert.True(t, r.ExistsByName(" milk "))
	assert.False(t, r.ExistsByName("Mil"))

	_, err = r.Add(domain.NewProduct("P-2", "mIlK", decimal.Zero, 0, 0))
	assert.Error(t, err)
	_, err = r.Add(domain.NewProduct("p-1", "Bread", decimal.Zero, 0, 0))
	assert.Error(t, err)
	assert.Equal(t, 1, r.Len())

	require.True(t, r.Remove("P-1"))
	assert.False(t, r.ExistsByName("milk"))
}

func TestProductRegistrySearchByName(t *testing.T) {
	r := NewProductRegistry()
	for i, name := range []string{"Bread", "Butter", "Milk", "buttermilk"} {
		_, err := r.Add(domain.NewProduct(string(rune('A'+i)), name, decimal.Zero, 1, 1))
		require.NoError(t, err)
	}

	var names []string
	for _, p := range r.SearchByName("bu") {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Butter", "buttermilk"}, names)
	assert.Len(t, r.SearchByName(""), 4)
}

func TestOrderRegistryOutstandingIsLive(t *testing.T) {
	r := NewOrderRegistry()
	a := &domain.Order{ProductID: "P-1", Quantity: 10, Outstanding: true}
	b := &domain.Order{ProductID: "P-2", Quantity: 4, Outstanding: true}
	assert.Equal(t, "O-1", r.Add(a))
	assert.Equal(t, "O-2", r.Add(b))
	assert.Len(t, r.Outstanding(), 2)

	a.Outstanding = false
	out := r.Outstanding()
	require.Len(t, out, 1)
	assert.Equal(t, "O-2", out[0].ID)

	o, ok := r.Get("o-1")
	require.True(t, ok)
	assert.False(t, o.Outstanding)
}
