package layer

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/deluxepaint/internal/pixel"
)

// stackOf builds a stack of n layers and returns their IDs bottom to top.
func stackOf(t *testing.T, n int) (*Stack, []string) {
	t.Helper()
	s := NewStack(4, 4)
	for i := 1; i < n; i++ {
		s.Add()
	}
	ids := make([]string, n)
	for i, l := range s.Layers() {
		ids[i] = l.ID
	}
	require.Equal(t, n, s.Len())
	return s, ids
}

func idsOf(s *Stack) []string {
	var ids []string
	for _, l := range s.Layers() {
		ids = append(ids, l.ID)
	}
	return ids
}

func TestNewStack(t *testing.T) {
	s := NewStack(20, 10)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.Active())
	l := s.ActiveLayer()
	assert.True(t, l.Visible)
	assert.Equal(t, uint8(255), l.Opacity)
	assert.NotEmpty(t, l.ID)
	assert.Equal(t, 20, l.Buffer.Width())
	assert.Equal(t, 10, l.Buffer.Height())
}

func TestAdd_BecomesActive(t *testing.T) {
	s := NewStack(4, 4)
	l := s.Add()
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.Active())
	assert.Same(t, l, s.ActiveLayer())
	assert.True(t, l.Buffer.Equal(pixel.New(4, 4)))
}

func TestAddBuffer_ResamplesToCanvas(t *testing.T) {
	s := NewStack(8, 8)
	l := s.AddBuffer(pixel.New(32, 16))
	assert.Equal(t, 8, l.Buffer.Width())
	assert.Equal(t, 8, l.Buffer.Height())
}

func TestDelete(t *testing.T) {
	t.Run("last layer is kept", func(t *testing.T) {
		s := NewStack(4, 4)
		assert.False(t, s.Delete(0))
		assert.Equal(t, 1, s.Len())
	})
	t.Run("invalid index", func(t *testing.T) {
		s, _ := stackOf(t, 3)
		assert.False(t, s.Delete(3))
		assert.False(t, s.Delete(-1))
		assert.Equal(t, 3, s.Len())
	})
	t.Run("active clamped", func(t *testing.T) {
		s, ids := stackOf(t, 3)
		require.Equal(t, 2, s.Active())
		assert.True(t, s.Delete(2))
		assert.Equal(t, 1, s.Active())
		assert.Equal(t, ids[:2], idsOf(s))
	})
	t.Run("active below deleted index unchanged", func(t *testing.T) {
		s, ids := stackOf(t, 3)
		s.SetActive(0)
		assert.True(t, s.Delete(1))
		assert.Equal(t, 0, s.Active())
		assert.Equal(t, []string{ids[0], ids[2]}, idsOf(s))
	})
}

func TestMergeInto(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}

	t.Run("upper into lower", func(t *testing.T) {
		s, ids := stackOf(t, 3)
		l1, _ := s.Layer(1)
		require.NoError(t, l1.Buffer.Set(1, 1, red))

		assert.True(t, s.MergeInto(0, 1))
		assert.Equal(t, []string{ids[0], ids[2]}, idsOf(s))
		assert.Equal(t, 1, s.Active(), "active above source decrements")
		bottom, _ := s.Layer(0)
		c, _ := bottom.Buffer.At(1, 1)
		assert.Equal(t, red, c)
	})
	t.Run("active source goes to target", func(t *testing.T) {
		s, ids := stackOf(t, 3)
		assert.True(t, s.MergeInto(0, 2))
		assert.Equal(t, 0, s.Active())
		assert.Equal(t, ids[0], s.ActiveLayer().ID)
	})
	t.Run("target above source", func(t *testing.T) {
		s, ids := stackOf(t, 2)
		s.SetActive(0)
		assert.True(t, s.MergeInto(1, 0))
		assert.Equal(t, 1, s.Len())
		assert.Equal(t, 0, s.Active())
		assert.Equal(t, ids[1], s.ActiveLayer().ID)
	})
	t.Run("source opacity applied", func(t *testing.T) {
		s, _ := stackOf(t, 2)
		top, _ := s.Layer(1)
		require.NoError(t, top.Buffer.Set(0, 0, red))
		s.SetOpacity(1, 128)
		s.MergeInto(0, 1)
		c, _ := s.ActiveLayer().Buffer.At(0, 0)
		assert.InDelta(t, 128, int(c.A), 1)
	})
	t.Run("invalid", func(t *testing.T) {
		s, _ := stackOf(t, 2)
		assert.False(t, s.MergeInto(1, 1))
		assert.False(t, s.MergeInto(0, 5))
		assert.False(t, s.MergeInto(-1, 0))
		assert.Equal(t, 2, s.Len())
	})
}

func TestMove_TracksActive(t *testing.T) {
	tests := []struct {
		name       string
		active     int
		from, to   int
		wantActive int
		wantOrder  []int
	}{
		{"moved layer is active", 1, 1, 3, 3, []int{0, 2, 3, 1}},
		{"up across active", 1, 0, 2, 0, []int{1, 2, 0, 3}},
		{"down across active", 2, 3, 1, 3, []int{0, 3, 1, 2}},
		{"onto active from below", 2, 0, 2, 1, []int{1, 2, 0, 3}},
		{"onto active from above", 1, 3, 1, 2, []int{0, 3, 1, 2}},
		{"unaffected", 0, 2, 3, 0, []int{0, 1, 3, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ids := stackOf(t, 4)
			require.True(t, s.SetActive(tt.active))
			activeID := s.ActiveLayer().ID

			require.True(t, s.Move(tt.from, tt.to))
			assert.Equal(t, tt.wantActive, s.Active())
			assert.Equal(t, activeID, s.ActiveLayer().ID, "active layer identity changed")

			want := make([]string, len(tt.wantOrder))
			for i, j := range tt.wantOrder {
				want[i] = ids[j]
			}
			assert.Equal(t, want, idsOf(s))
		})
	}
}

func TestMove_Invalid(t *testing.T) {
	s, ids := stackOf(t, 3)
	assert.False(t, s.Move(1, 1))
	assert.False(t, s.Move(-1, 0))
	assert.False(t, s.Move(0, 3))
	assert.Equal(t, ids, idsOf(s))
}

func TestAttributes(t *testing.T) {
	s, _ := stackOf(t, 2)

	assert.True(t, s.SetVisible(0, false))
	l0, _ := s.Layer(0)
	assert.False(t, l0.Visible)
	assert.False(t, s.SetVisible(2, false))

	assert.True(t, s.SetOpacity(1, 300))
	l1, _ := s.Layer(1)
	assert.Equal(t, uint8(255), l1.Opacity)
	s.SetOpacity(1, -20)
	assert.Equal(t, uint8(0), l1.Opacity)
	s.SetOpacity(1, 77)
	assert.Equal(t, uint8(77), l1.Opacity)
	assert.False(t, s.SetOpacity(9, 10))

	assert.True(t, s.SetActive(0))
	assert.Equal(t, 0, s.Active())
	assert.False(t, s.SetActive(2))
	assert.Equal(t, 0, s.Active())
}

func TestCloneAndRestore_AreDeep(t *testing.T) {
	s, _ := stackOf(t, 2)
	s.SetOpacity(0, 40)
	c := s.Clone()

	require.NoError(t, s.ActiveLayer().Buffer.Set(0, 0, color.RGBA{G: 255, A: 255}))
	s.SetOpacity(0, 200)
	s.Add()

	assert.Equal(t, 2, c.Len())
	cl0, _ := c.Layer(0)
	assert.Equal(t, uint8(40), cl0.Opacity)
	px, _ := c.ActiveLayer().Buffer.At(0, 0)
	assert.Equal(t, pixel.Transparent, px)

	s.Restore(c)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, idsOf(c), idsOf(s))
	assert.NotSame(t, c.ActiveLayer().Buffer, s.ActiveLayer().Buffer)
}

func TestAssemble(t *testing.T) {
	ok := []*Layer{New(pixel.New(3, 2)), New(pixel.New(3, 2))}
	s, err := Assemble(3, 2, ok, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.Active())

	_, err = Assemble(3, 2, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidStack)
	_, err = Assemble(3, 2, ok, 2)
	assert.ErrorIs(t, err, ErrInvalidStack)
	_, err = Assemble(4, 2, ok, 0)
	assert.ErrorIs(t, err, ErrInvalidStack)
}

func TestReset(t *testing.T) {
	s, _ := stackOf(t, 3)
	s.Reset()
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.Active())
	assert.Equal(t, 4, s.Width())
}
