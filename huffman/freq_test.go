package huffman

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrequencyTable_ReadFrom(t *testing.T) {
	input := strings.Repeat("abracadabra\n", 4000)

	var freq FrequencyTable
	n, err := freq.ReadFrom(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, int64(len(input)), n)
	require.Equal(t, uint64(len(input)), freq.Total())

	require.Equal(t, uint64(5*4000), freq.Count('a'))
	require.Equal(t, uint64(2*4000), freq.Count('b'))
	require.Equal(t, uint64(4000), freq.Count('\n'))
	require.Equal(t, uint64(0), freq.Count('z'))
	require.Equal(t, 6, freq.Len())
	require.Equal(t, []Symbol{'\n', 'a', 'b', 'c', 'd', 'r'}, freq.Symbols())
}

func TestFrequencyTable_Dump(t *testing.T) {
	var freq FrequencyTable
	freq.Add([]byte("aab\x00"))

	expectDump := strings.Join([]string{
		"FrequencyTable{\n",
		"\tTotal() = 4\n",
		"\tCount('\\x00') = 1\n",
		"\tCount('a') = 2\n",
		"\tCount('b') = 1\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = freq.Dump(&buf)
	actualDump := buf.String()

	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}
}

func TestFormatSymbol(t *testing.T) {
	require.Equal(t, "'a'", FormatSymbol('a'))
	require.Equal(t, "' '", FormatSymbol(' '))
	require.Equal(t, "'\\x0a'", FormatSymbol('\n'))
	require.Equal(t, "'\\xff'", FormatSymbol(0xff))
}
