package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/letterforge/internal/category"
)

func analysis() category.Analysis {
	return category.Analysis{
		FurtherDiscussion: []string{"Please contact me."},
		Endorsement:       []string{"I recommend Jane.", "Jane has my full support."},
	}
}

func TestFiles_CanonicalOrderSkipsEmpty(t *testing.T) {
	files := Files(analysis())

	require.Len(t, files, 2)
	assert.Equal(t, File{Name: "endorsement.txt", Content: "I recommend Jane.\nJane has my full support.\n"}, files[0])
	assert.Equal(t, File{Name: "further_discussion.txt", Content: "Please contact me.\n"}, files[1])
}

func TestFiles_Empty(t *testing.T) {
	assert.Empty(t, Files(category.Analysis{}))
}

func TestLookup(t *testing.T) {
	f, ok := Lookup(analysis(), category.Endorsement)
	require.True(t, ok)
	assert.Equal(t, "endorsement.txt", f.Name)

	_, ok = Lookup(analysis(), category.Qualities)
	assert.False(t, ok)
}

func TestWriteDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "smith")

	paths, err := WriteDir(dir, analysis())
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "endorsement.txt"),
		filepath.Join(dir, "further_discussion.txt"),
	}, paths)

	data, err := os.ReadFile(filepath.Join(dir, "further_discussion.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Please contact me.\n", string(data))

	_, err = os.Stat(filepath.Join(dir, "qualities.txt"))
	assert.True(t, os.IsNotExist(err))
}
