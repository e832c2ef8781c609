package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwei/drugtree/pkg/drugtree/colmap"
	"github.com/lwei/drugtree/pkg/drugtree/models"
	"github.com/lwei/drugtree/pkg/drugtree/parser"
)

func cat(code, parent string, level, direct int) *models.Category {
	return &models.Category{
		Code:          code,
		Name:          "category " + code,
		Level:         level,
		ParentCode:    parent,
		Subcategories: map[string]*models.Category{},
		MedicineCount: direct,
	}
}

func TestAssemble_NestsAndCounts(t *testing.T) {
	flat := map[string]*models.Category{
		"A":   cat("A", "", 1, 2),
		"A1":  cat("A1", "A", 2, 3),
		"A11": cat("A11", "A1", 3, 4),
		"B":   cat("B", "", 1, 5),
	}

	roots, err := Assemble(flat)
	require.NoError(t, err)
	require.Len(t, roots, 2)

	a := roots["A"]
	require.NotNil(t, a)
	a1 := a.Subcategories["A1"]
	require.NotNil(t, a1)
	a11 := a1.Subcategories["A11"]
	require.NotNil(t, a11)
	assert.Empty(t, a11.Subcategories)

	assert.Equal(t, 4, a11.MedicineCount)
	assert.Equal(t, 7, a1.MedicineCount)
	assert.Equal(t, 9, a.MedicineCount)
	assert.Equal(t, 5, roots["B"].MedicineCount)
}

func TestAssemble_DoesNotMutateInput(t *testing.T) {
	flat := map[string]*models.Category{
		"A":  cat("A", "", 1, 1),
		"A1": cat("A1", "A", 2, 2),
	}

	first, err := Assemble(flat)
	require.NoError(t, err)

	// flat keeps direct counts and empty subcategory maps
	assert.Equal(t, 1, flat["A"].MedicineCount)
	assert.Empty(t, flat["A"].Subcategories)

	second, err := Assemble(flat)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// the two forests share no nodes
	first["A"].MedicineCount = 99
	assert.Equal(t, 3, second["A"].MedicineCount)
}

func TestAssemble_MissingParentBecomesRoot(t *testing.T) {
	flat := map[string]*models.Category{
		"A1": cat("A1", "GONE", 2, 1),
	}

	roots, err := Assemble(flat)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Contains(t, roots, "A1")
}

func TestAssemble_CyclicParents(t *testing.T) {
	flat := map[string]*models.Category{
		"A": cat("A", "B", 1, 1),
		"B": cat("B", "A", 1, 1),
	}

	_, err := Assemble(flat)
	require.ErrorIs(t, err, ErrCyclicParent)
}

func TestAssemble_SelfParent(t *testing.T) {
	flat := map[string]*models.Category{
		"A": cat("A", "A", 1, 1),
	}

	_, err := Assemble(flat)
	require.ErrorIs(t, err, ErrCyclicParent)
}

func TestAssemble_Empty(t *testing.T) {
	roots, err := Assemble(map[string]*models.Category{})
	require.NoError(t, err)
	assert.Empty(t, roots)
}

// End-to-end properties over classifier output: lineage paths follow
// parent links, cumulative counts match an independent recount, and
// every flat category appears exactly once in the forest.
func TestAssemble_ClassifierProperties(t *testing.T) {
	rows := [][]string{
		{"", "header"},
		{"", "header"},
		{"1", "甲类"},
		{"", "药品一"},
		{"11", "甲类一组"},
		{"", "药品二"},
		{"", "药品三"},
		{"111", "甲类一组细分"},
		{"", "药品四"},
		{"12", "甲类二组"},
		{"", "药品五"},
		{"2", "乙类"},
		{"", "药品六"},
	}
	m := colmap.Map{Name: &colmap.Field{Kind: colmap.FirstNonEmpty, Columns: []int{1}}}
	res := parser.Classify(rows, "西药部分", m)

	roots, err := Assemble(res.Categories)
	require.NoError(t, err)

	// P1: each consecutive lineage pair is a parent link and the last
	// element is the medicine's own category.
	for _, med := range res.Medicines {
		require.NotEmpty(t, med.AllCategoryCodes)
		for i := 1; i < len(med.AllCategoryCodes); i++ {
			child := res.Categories[med.AllCategoryCodes[i]]
			require.NotNil(t, child)
			assert.Equal(t, med.AllCategoryCodes[i-1], child.ParentCode)
		}
		assert.Equal(t, med.CategoryCode, med.AllCategoryCodes[len(med.AllCategoryCodes)-1])
	}

	// P2: cumulative count equals the number of medicines whose lineage
	// contains the category's code.
	lineageCount := func(code string) int {
		n := 0
		for _, med := range res.Medicines {
			for _, c := range med.AllCategoryCodes {
				if c == code {
					n++
					break
				}
			}
		}
		return n
	}
	var walk func(node *models.Category)
	seen := map[string]int{}
	walk = func(node *models.Category) {
		seen[node.Code]++
		assert.Equal(t, lineageCount(node.Code), node.MedicineCount, "count for %s", node.Code)
		for _, sub := range node.Subcategories {
			walk(sub)
		}
	}
	for _, root := range roots {
		walk(root)
	}

	// P3: forest closure, every flat category exactly once.
	require.Len(t, seen, len(res.Categories))
	for code, n := range seen {
		assert.Equal(t, 1, n, "category %s appears %d times", code, n)
		assert.Contains(t, res.Categories, code)
	}
}
