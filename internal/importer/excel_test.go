package importer

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mroshb/filmorate/internal/models"
)

func writeWorkbook(t *testing.T, sheets map[string][][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for name, rows := range sheets {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &rows[i]))
		}
	}

	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadCatalog(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		FilmsSheet: {
			{"Name", "Description", "ReleaseDate", "Duration"},
			{"Alien", "In space no one can hear you scream", "1979-05-25", "117"},
			{"Bad date", "", "25/05/1979", "90"},
			{"", "nameless row is skipped"},
			{"Short"},
			{"Salesman", "", "٢٠١٦-٠٥-٢١", "۱۲۵"},
		},
		UsersSheet: {
			{"Email", "Login", "Name", "Birthday"},
			{"ann@example.com", "ann", "Ann", "1990-01-02"},
			{"bob@example.com", "bob"},
			{"no-login@example.com"},
		},
	})

	catalog, err := ReadCatalog(path)
	require.NoError(t, err)

	require.Len(t, catalog.Films, 3)
	assert.Equal(t, "Alien", catalog.Films[0].Name)
	assert.Equal(t, 117, catalog.Films[0].Duration)
	assert.Equal(t, time.Date(1979, 5, 25, 0, 0, 0, 0, time.UTC), catalog.Films[0].ReleaseDate)
	assert.Equal(t, "Short", catalog.Films[1].Name)
	assert.Zero(t, catalog.Films[1].Duration)
	assert.Equal(t, 125, catalog.Films[2].Duration)
	assert.Equal(t, time.Date(2016, 5, 21, 0, 0, 0, 0, time.UTC), catalog.Films[2].ReleaseDate)

	require.Len(t, catalog.Users, 2)
	assert.Equal(t, "ann", catalog.Users[0].Login)
	assert.Equal(t, "Ann", catalog.Users[0].Name)
	assert.Equal(t, "bob", catalog.Users[1].Login)
	assert.Empty(t, catalog.Users[1].Name)
}

func TestReadCatalog_MissingFile(t *testing.T) {
	_, err := ReadCatalog(filepath.Join(t.TempDir(), "absent.xlsx"))
	assert.Error(t, err)
}

func TestWriteTopFilms(t *testing.T) {
	path := filepath.Join(t.TempDir(), "top.xlsx")
	films := []models.FilmWithStats{
		{Film: models.Film{ID: 3, Name: "Alien", ReleaseDate: time.Date(1979, 5, 25, 0, 0, 0, 0, time.UTC), Duration: 117}, LikeCount: 4},
		{Film: models.Film{ID: 1, Name: "Heat", Duration: 170}, LikeCount: 0},
	}

	require.NoError(t, WriteTopFilms(path, films))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(TopSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Rank", "ID", "Name", "ReleaseDate", "Duration", "Likes"}, rows[0])
	assert.Equal(t, []string{"1", "3", "Alien", "1979-05-25", "117", "4"}, rows[1])
	assert.Equal(t, []string{"2", "1", "Heat", "", "170", "0"}, rows[2])
}
