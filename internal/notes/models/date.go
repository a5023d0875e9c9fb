package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a day/month/year triple is not a real calendar date.
var ErrInvalidDate = errors.New("invalid date")

const (
	MinYear = 1
	MaxYear = 9999
)

// Date is a calendar date without a time component
type Date struct {
	Day   int
	Month int
	Year  int
}

// Today returns the current date per the host clock
func Today() Date {
	return DateOf(time.Now())
}

// DateOf returns the local calendar date of t
func DateOf(t time.Time) Date {
	t = t.Local()
	return Date{Day: t.Day(), Month: int(t.Month()), Year: t.Year()}
}

// NewDate builds a Date from its parts, failing with ErrInvalidDate if any part is out of range.
func NewDate(day, month, year int) (Date, error) {
	d := Date{Day: day, Month: month, Year: year}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// ParseDate parses the dd-mm-yyyy form produced by String.
func ParseDate(s string) (Date, error) {
	d, err := ScanDate(s)
	if err != nil {
		return Date{}, err
	}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// ScanDate reads the dd-mm-yyyy fields without range checks, so a stored
// 31-02-2021 comes back as written.
func ScanDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q is not dd-mm-yyyy", ErrInvalidDate, s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q is not dd-mm-yyyy", ErrInvalidDate, s)
		}
		nums[i] = n
	}
	return Date{Day: nums[0], Month: nums[1], Year: nums[2]}, nil
}

// Validate checks the month, day and year bounds
func (d Date) Validate() error {
	if d.Year < MinYear || d.Year > MaxYear {
		return fmt.Errorf("%w: year %d out of range %d-%d", ErrInvalidDate, d.Year, MinYear, MaxYear)
	}
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("%w: month %d out of range 1-12", ErrInvalidDate, d.Month)
	}
	if n := DaysIn(d.Month, d.Year); d.Day < 1 || d.Day > n {
		return fmt.Errorf("%w: day %d out of range 1-%d", ErrInvalidDate, d.Day, n)
	}
	return nil
}

// IsValid reports whether Validate succeeds
func (d Date) IsValid() bool {
	return d.Validate() == nil
}

// String formats the date as dd-mm-yyyy
func (d Date) String() string {
	return fmt.Sprintf("%02d-%02d-%04d", d.Day, d.Month, d.Year)
}

// DaysIn returns the number of days in month of year, or 0 for an invalid month.
func DaysIn(month, year int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	}
	return 0
}

// IsLeapYear follows the Gregorian rule
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
