package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "plain fields",
			line: "Friday,3:00PM,Water,Alpha",
			want: []string{"Friday", "3:00PM", "Water", "Alpha"},
		},
		{
			name: "quoted field with comma",
			line: `Friday,3:00PM,Water,"Alpha, Beta & Friends"`,
			want: []string{"Friday", "3:00PM", "Water", "Alpha, Beta & Friends"},
		},
		{
			name: "fields trimmed",
			line: " Friday , 3:00PM ,  Water ,Alpha ",
			want: []string{"Friday", "3:00PM", "Water", "Alpha"},
		},
		{
			name: "empty fields preserved positionally",
			line: "Friday,,Water,",
			want: []string{"Friday", "", "Water", ""},
		},
		{
			name: "unterminated quote swallows rest of line",
			line: `Friday,"3:00PM,Water,Alpha`,
			want: []string{"Friday", "3:00PM,Water,Alpha"},
		},
		{
			name: "extra fields kept",
			line: "Friday,3:00PM,Water,Alpha,notes here",
			want: []string{"Friday", "3:00PM", "Water", "Alpha", "notes here"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLine(tt.line))
		})
	}
}

func TestParseSkipsHeaderAndBadRows(t *testing.T) {
	input := "Day,Time,Stage,Artist\n" +
		"Friday,9:00PM,Water,Alpha\n" +
		"\n" + // blank line skipped
		"Friday,9:30PM,Water\n" + // too few fields
		"Friday,,Water,Beta\n" + // empty time
		"Saturday,8:00PM,Air,Gamma\n"

	store, err := Parse(input)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, []string{"Friday", "Saturday"}, store.Days())
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse("")
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Parse("   \n  \n")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestParseHeaderOnly(t *testing.T) {
	store, err := Parse("Day,Time,Stage,Artist")
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestParseIdempotent(t *testing.T) {
	input := "Day,Time,Stage,Artist\n" +
		"Friday,9:00PM,Water,Alpha\n" +
		"Friday,12:30AM,Water,Beta\n" +
		"Saturday,8:00PM,Air,Gamma\n"

	a, err := Parse(input)
	require.NoError(t, err)
	b, err := Parse(input)
	require.NoError(t, err)

	assert.Equal(t, a.SourceOrder(), b.SourceOrder())
	assert.Equal(t, a.Chronological(), b.Chronological())
}
