package usecase

import (
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

var (
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrEmptyUpdate       = errors.New("no fields to update")
	ErrInvalidReference  = errors.New("referenced record does not exist")
	ErrNegativeQuantity  = errors.New("quantity cannot be negative")
)

// nowFunc is replaced in tests.
var nowFunc = time.Now

// today is the current local calendar date at UTC midnight, the form every
// date column is stored in.
func today() time.Time {
	y, m, d := nowFunc().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// parseOptionalDate treats nil and "" as no date.
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := parseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isDuplicateKeyError checks if the error is a unique constraint violation,
// either raw from PostgreSQL or translated by GORM
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		return pgErr.Code == "23505"
	}
	return false
}

// isForeignKeyError checks if the error is a foreign key violation
func isForeignKeyError(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		return pgErr.Code == "23503"
	}
	return false
}

// fieldSetter collects optional-field assignments for partial updates
// and remembers whether any field was present.
type fieldSetter struct {
	changed bool
}

func (f *fieldSetter) setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
		f.changed = true
	}
}

func (f *fieldSetter) setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
		f.changed = true
	}
}

func (f *fieldSetter) setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
		f.changed = true
	}
}

func (f *fieldSetter) setDate(dst *time.Time, src *string) error {
	if src == nil {
		return nil
	}
	t, err := parseDate(*src)
	if err != nil {
		return err
	}
	*dst = t
	f.changed = true
	return nil
}

// setOptionalDate sets dst from src; an empty string clears it.
func (f *fieldSetter) setOptionalDate(dst **time.Time, src *string) error {
	if src == nil {
		return nil
	}
	t, err := parseOptionalDate(src)
	if err != nil {
		return err
	}
	*dst = t
	f.changed = true
	return nil
}

func (f *fieldSetter) mark() {
	f.changed = true
}
