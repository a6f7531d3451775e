// Package importer moves catalog data in and out of Excel workbooks.
package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/pkg/errors"
	"github.com/mroshb/filmorate/pkg/logger"
	"github.com/mroshb/filmorate/pkg/utils"
)

const (
	FilmsSheet = "Films"
	UsersSheet = "Users"
	TopSheet   = "Top"

	dateLayout = "2006-01-02"
)

// Catalog is the content of an import workbook.
type Catalog struct {
	Films []models.Film
	Users []models.User
}

// ReadCatalog reads the Films and Users sheets. The first row of each sheet
// is a header. Either sheet may be absent; rows that cannot be parsed are
// logged and skipped.
//
//	Films: Name | Description | ReleaseDate (YYYY-MM-DD) | Duration (minutes)
//	Users: Email | Login | Name | Birthday (YYYY-MM-DD)
func ReadCatalog(path string) (*Catalog, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidArgument, "failed to open workbook")
	}
	defer f.Close()

	catalog := &Catalog{}
	for _, sheet := range f.GetSheetList() {
		switch sheet {
		case FilmsSheet:
			rows, err := f.GetRows(sheet)
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrCodeInvalidArgument, "failed to read films sheet")
			}
			catalog.Films = parseFilms(rows)
		case UsersSheet:
			rows, err := f.GetRows(sheet)
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrCodeInvalidArgument, "failed to read users sheet")
			}
			catalog.Users = parseUsers(rows)
		default:
			logger.Debug("Ignoring sheet", "sheet", sheet)
		}
	}
	return catalog, nil
}

func parseFilms(rows [][]string) []models.Film {
	films := make([]models.Film, 0, len(rows))
	for i, row := range rows {
		if i == 0 || len(row) == 0 || strings.TrimSpace(cell(row, 0)) == "" {
			continue
		}

		film := models.Film{
			Name:        strings.TrimSpace(cell(row, 0)),
			Description: strings.TrimSpace(cell(row, 1)),
		}

		if raw := utils.NormalizeDigits(cell(row, 2)); raw != "" {
			date, err := time.Parse(dateLayout, raw)
			if err != nil {
				logger.Warn("Skipping film row with bad release date", "row", i+1, "value", raw)
				continue
			}
			film.ReleaseDate = date
		}
		if raw := utils.NormalizeDigits(cell(row, 3)); raw != "" {
			minutes, err := strconv.Atoi(raw)
			if err != nil {
				logger.Warn("Skipping film row with bad duration", "row", i+1, "value", raw)
				continue
			}
			film.Duration = minutes
		}

		films = append(films, film)
	}
	return films
}

func parseUsers(rows [][]string) []models.User {
	users := make([]models.User, 0, len(rows))
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue
		}

		user := models.User{
			Email: strings.TrimSpace(cell(row, 0)),
			Login: strings.TrimSpace(cell(row, 1)),
			Name:  strings.TrimSpace(cell(row, 2)),
		}
		if user.Email == "" || user.Login == "" {
			logger.Warn("Skipping user row without email or login", "row", i+1)
			continue
		}
		if raw := utils.NormalizeDigits(cell(row, 3)); raw != "" {
			date, err := time.Parse(dateLayout, raw)
			if err != nil {
				logger.Warn("Skipping user row with bad birthday", "row", i+1, "value", raw)
				continue
			}
			user.Birthday = date
		}

		users = append(users, user)
	}
	return users
}

// WriteTopFilms saves a ranking to a new workbook with a single Top sheet.
func WriteTopFilms(path string, films []models.FilmWithStats) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", TopSheet); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to prepare workbook")
	}

	header := []interface{}{"Rank", "ID", "Name", "ReleaseDate", "Duration", "Likes"}
	if err := f.SetSheetRow(TopSheet, "A1", &header); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to write header")
	}

	for i, film := range films {
		released := ""
		if !film.ReleaseDate.IsZero() {
			released = film.ReleaseDate.Format(dateLayout)
		}
		row := []interface{}{i + 1, film.ID, film.Name, released, film.Duration, film.LikeCount}
		if err := f.SetSheetRow(TopSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to write ranking row")
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to save workbook")
	}
	return nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
