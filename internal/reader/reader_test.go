package reader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/text/encoding/korean"
)

func writeTempCSV(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestReadCSV_UTF8(t *testing.T) {
	path := writeTempCSV(t, "members.csv", []byte("이름,전화번호\n김철수,01012345678\n"))

	headers, rows, err := ReadCSV(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"이름", "전화번호"}, headers)
	require.Len(t, rows, 1)
	assert.Equal(t, "김철수", rows[0]["이름"])
}

func TestReadCSV_StripsBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("이름\n김철수\n")...)
	path := writeTempCSV(t, "bom.csv", data)

	headers, rows, err := ReadCSV(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"이름"}, headers, "BOM must not leak into the first header")
	require.Len(t, rows, 1)
}

func TestReadCSV_EUCKR(t *testing.T) {
	// Spreadsheet exports from older Windows installs arrive in EUC-KR.
	encoded, err := korean.EUCKR.NewEncoder().Bytes([]byte("이름,입금\n박민수,50000\n"))
	require.NoError(t, err)
	path := writeTempCSV(t, "euckr.csv", encoded)

	headers, rows, err := ReadCSV(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"이름", "입금"}, headers)
	require.Len(t, rows, 1)
	assert.Equal(t, "박민수", rows[0]["이름"])
}

func TestReadCSV_PadsShortRows(t *testing.T) {
	path := writeTempCSV(t, "ragged.csv", []byte("이름,전화번호,이메일\n김철수,01012345678\n"))

	_, rows, err := ReadCSV(path)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0]["이메일"])
}

func TestReadCSV_MissingFile(t *testing.T) {
	_, _, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))

	require.Error(t, err)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadCSV_EmptyFile(t *testing.T) {
	path := writeTempCSV(t, "empty.csv", nil)

	_, _, err := ReadCSV(path)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, path, loadErr.File)
}
