package rendering

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cardforge/internal/types"
)

func TestNewRenderSpec_Default(t *testing.T) {
	spec, err := NewRenderSpec(800, 600)
	require.NoError(t, err)

	assert.Equal(t, 30, spec.Margin)
	assert.Equal(t, image.Rect(0, 0, 800, 70), spec.TitleBar)
	assert.Equal(t, image.Rect(30, 100, 305, 570), spec.Photo)
	assert.Equal(t, image.Rect(335, 100, 770, 570), spec.Text)
	assert.Equal(t, spec, DefaultRenderSpec())
}

func TestNewRenderSpec_Proportions(t *testing.T) {
	sizes := [][2]int{{800, 600}, {400, 300}, {1754, 1240}, {1100, 850}, {123, 77}, {40, 30}}

	for _, size := range sizes {
		spec, err := NewRenderSpec(size[0], size[1])
		require.NoError(t, err)
		require.NoError(t, spec.Validate())

		split := size[0] * 40 / 100
		assert.LessOrEqual(t, spec.Photo.Max.X, split, "photo must stay in the left 40 percent")
		assert.GreaterOrEqual(t, spec.Text.Min.X, split, "text must stay in the right 60 percent")
		assert.True(t, spec.Photo.Intersect(spec.Text).Empty())
		assert.True(t, spec.Photo.Intersect(spec.TitleBar).Empty())
		assert.True(t, spec.Text.Intersect(spec.TitleBar).Empty())
		assert.Equal(t, size[0], spec.TitleBar.Dx(), "title bar spans the full width")
	}
}

func TestNewRenderSpec_SmallCanvas(t *testing.T) {
	spec, err := NewRenderSpec(40, 30)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 40, 15), spec.TitleBar)
	assert.Equal(t, 4, spec.Margin)
	assert.Equal(t, image.Rect(4, 19, 14, 26), spec.Photo)
	assert.Equal(t, image.Rect(18, 19, 36, 26), spec.Text)
}

func TestNewRenderSpec_NonPositive(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"zero width", 0, 600},
		{"zero height", 800, 0},
		{"negative width", -800, 600},
		{"negative height", 800, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRenderSpec(tt.width, tt.height)
			require.Error(t, err)

			var layoutErr *LayoutError
			require.True(t, errors.As(err, &layoutErr))
			assert.Equal(t, StageSpec, layoutErr.Stage)
			assert.Contains(t, err.Error(), "must be positive")
		})
	}
}

func TestRenderSpec_Validate(t *testing.T) {
	spec := DefaultRenderSpec()
	assert.NoError(t, spec.Validate())

	spec.Text = image.Rect(500, 100, 900, 570)
	err := spec.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "text region")

	assert.Error(t, RenderSpec{}.Validate())
}

func TestBudgetFor(t *testing.T) {
	budget := BudgetFor(DefaultRenderSpec())
	require.NoError(t, budget.Validate())
	assert.GreaterOrEqual(t, budget.MaxLinesPerSection, 1)
	assert.LessOrEqual(t, budget.MaxLinesPerSection, 5)
	assert.GreaterOrEqual(t, budget.MaxCharsPerLine, 20)
	assert.LessOrEqual(t, budget.MaxCharsPerLine, 160)

	// Same proportions at a larger size give the same budget, since fonts scale
	large, err := NewRenderSpec(1600, 1200)
	require.NoError(t, err)
	largeBudget := BudgetFor(large)
	assert.InDelta(t, budget.MaxCharsPerLine, largeBudget.MaxCharsPerLine, 12)
	assert.InDelta(t, budget.MaxLinesPerSection, largeBudget.MaxLinesPerSection, 1)

	assert.Equal(t, types.DefaultLayoutBudget(), BudgetFor(RenderSpec{}))
}
