package words_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/ringram/internal/words"
)

func TestParseNormalises(t *testing.T) {
	in := strings.Join([]string{
		"# comment",
		"bird",
		"  Born ",
		"",
		"DOVE",
		"bird",
		"d0ve",
		"cat",
		"birds",
		"ab",
	}, "\n")
	d, err := words.Parse(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"BIRD", "BORN", "DOVE"}, d.Words(4))
	assert.Equal(t, []string{"CAT"}, d.Words(3))
	assert.Equal(t, 4, d.Len())
	assert.Equal(t, map[int]int{3: 1, 4: 3}, d.Stats())
	assert.Equal(t, []int{3, 4}, d.Sides())
	assert.True(t, d.Contains("bird"))
	assert.True(t, d.Contains("BIRD"))
	assert.False(t, d.Contains("BIRDS"))
}

func TestLoadEmbeddedDefaults(t *testing.T) {
	d, err := words.Load(nil)
	require.NoError(t, err)
	for _, w := range []string{"BIRD", "BORN", "DOVE", "NOSE", "CAT", "COW", "TON", "WON"} {
		assert.True(t, d.Contains(w), w)
	}
	assert.NotEmpty(t, d.Words(3))
	assert.NotEmpty(t, d.Words(4))
	for _, w := range d.Words(4) {
		assert.Len(t, w, 4)
		assert.Equal(t, strings.ToUpper(w), w)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "four.txt")
	require.NoError(t, os.WriteFile(path, []byte("bird\nborn\ndove\nnose\ncat\n"), 0o644))

	d, err := words.Load(map[int]string{4: path})
	require.NoError(t, err)
	assert.Equal(t, []string{"BIRD", "BORN", "DOVE", "NOSE"}, d.Words(4))
	// Side 3 still comes from the embedded list.
	assert.True(t, d.Contains("COW"))
	assert.False(t, d.Contains("BARD"))

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("cat\n"), 0o644))
	_, err = words.Load(map[int]string{4: empty})
	assert.Error(t, err)

	_, err = words.Load(map[int]string{3: filepath.Join(dir, "missing.txt")})
	assert.Error(t, err)
}
