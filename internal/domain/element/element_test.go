package element_test

import (
	"testing"

	"github.com/KirkDiggler/bloodbond/internal/domain/element"
	dnderr "github.com/KirkDiggler/bloodbond/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		want            element.Element
		wantErr         bool
		wantSuggestions []string
	}{
		{name: "lowercase", input: "fire", want: element.Fire},
		{name: "mixed case with spaces", input: "  MoOn ", want: element.Moon},
		{name: "typo suggests", input: "fier", wantErr: true, wantSuggestions: []string{"fire"}},
		{name: "empty", input: "   ", wantErr: true},
		{name: "not an element", input: "lightning", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := element.Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dnderr.IsInvalidArgument(err))
				assert.Equal(t, "element", dnderr.GetField(err))
				if tt.wantSuggestions != nil {
					assert.Equal(t, tt.wantSuggestions, dnderr.GetSuggestions(err))
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBloodline_TagsField(t *testing.T) {
	_, err := element.ParseBloodline("dragon")
	require.Error(t, err)
	assert.Equal(t, "bloodline", dnderr.GetField(err))
}

func TestAll_IsCanonicalAndCopied(t *testing.T) {
	all := element.All()
	require.Len(t, all, 10)
	assert.Equal(t, element.Moon, all[0])
	assert.Equal(t, element.Sun, all[9])

	all[0] = "changed"
	assert.Equal(t, element.Moon, element.All()[0])
}

func TestSet(t *testing.T) {
	s := element.NewSet(element.Song, element.Moon, element.Wind)

	assert.True(t, s.Has(element.Moon))
	assert.False(t, s.Has(element.Fire))
	assert.Equal(t, []element.Element{element.Moon, element.Wind, element.Song}, s.Sorted())

	var empty element.Set
	assert.False(t, empty.Has(element.Moon))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Protection", element.Protection.Title())
	assert.Equal(t, "", element.Element("").Title())
}
