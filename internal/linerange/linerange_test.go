package linerange

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give string
		want []int // 1-based
	}{
		{desc: "empty"},
		{desc: "no brackets", give: "title=foo"},
		{desc: "single", give: "{2}", want: []int{2}},
		{
			desc: "values and ranges",
			give: "{2,4-6}",
			want: []int{2, 4, 5, 6},
		},
		{
			desc: "surrounded by other meta",
			give: `jsx title="x" {1,3-4} live`,
			want: []int{1, 3, 4},
		},
		{
			desc: "descending range",
			give: "{5-3}",
			want: []int{3, 4, 5},
		},
		{
			desc: "overlapping parts",
			give: "{1-3,2-4,4}",
			want: []int{1, 2, 3, 4},
		},
		{
			desc: "invalid parts skipped",
			give: "{1,3-,,-2,5}",
			want: []int{1, 5},
		},
		{desc: "only invalid parts", give: "{-,--}"},
		{desc: "non-numeric brackets", give: "{a-b}"},
		{desc: "unclosed", give: "{1,2"},
		{desc: "double dash", give: "{1--2}"},
		{desc: "too many dashes", give: "{1-2-3}"},
		{
			desc: "first expression wins",
			give: "{1} {3}",
			want: []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			got := Parse(tt.give)
			assert.Equal(t, tt.want, got.Lines())
			assert.Equal(t, len(tt.want) == 0, got.Empty())
		})
	}
}

func TestSet_Contains(t *testing.T) {
	t.Parallel()

	t.Run("values and ranges", func(t *testing.T) {
		t.Parallel()

		// "{a,b-c}" selects a-1 and b-1..c-1.
		s := Parse("{2,5-7}")
		for idx := -2; idx < 20; idx++ {
			want := idx == 1 || (idx >= 4 && idx <= 6)
			assert.Equal(t, want, s.Contains(idx), "index %d", idx)
		}
	})

	t.Run("no expression", func(t *testing.T) {
		t.Parallel()

		for _, give := range []string{"", "foo", "{}", "{x}"} {
			s := Parse(give)
			for idx := 0; idx < 100; idx++ {
				assert.False(t, s.Contains(idx), "%q: index %d", give, idx)
			}
		}
	})

	t.Run("zero value", func(t *testing.T) {
		t.Parallel()

		var s Set
		assert.False(t, s.Contains(0))
		assert.True(t, s.Empty())
	})

	t.Run("large range", func(t *testing.T) {
		t.Parallel()

		s := Parse("{1-1000000000}")
		assert.True(t, s.Contains(0))
		assert.True(t, s.Contains(999_999_999))
		assert.False(t, s.Contains(1_000_000_000))
	})
}

func TestSet_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give string
		want string
	}{
		{give: "", want: ""},
		{give: "{3}", want: "{3}"},
		{give: "{1,2,3,5}", want: "{1-3,5}"},
		{give: "{6-4,1}", want: "{1,4-6}"},
		{give: "{2,3-}", want: "{2}"},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Parse(tt.give).String())
		})
	}
}
