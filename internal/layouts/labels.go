package layouts

import (
	"strconv"
	"strings"
)

const maxRowLetters = 3

// RowLetters converts a 1-based row number to letters: 1 → A, 26 → Z, 27 → AA.
func RowLetters(row int) string {
	if row < 1 {
		return ""
	}
	var buf []byte
	for row > 0 {
		row--
		buf = append([]byte{byte('A' + row%26)}, buf...)
		row /= 26
	}
	return string(buf)
}

// FormatLabel builds a seat label such as "C5" from a 1-based row and column
func FormatLabel(prefix string, row, column int) string {
	return prefix + RowLetters(row) + strconv.Itoa(column)
}

// ParseLabel decodes an unprefixed seat label into its 1-based row and column
func ParseLabel(label string) (row, column int, err error) {
	label = strings.ToUpper(strings.TrimSpace(label))

	i := 0
	for i < len(label) && label[i] >= 'A' && label[i] <= 'Z' {
		row = row*26 + int(label[i]-'A'+1)
		i++
	}
	if i == 0 || i > maxRowLetters || i == len(label) {
		return 0, 0, ErrInvalidSeatLabel.WithDetail("invalid seat label: " + label)
	}

	column, convErr := strconv.Atoi(label[i:])
	if convErr != nil || column < 1 {
		return 0, 0, ErrInvalidSeatLabel.WithDetail("invalid seat label: " + label)
	}
	return row, column, nil
}

// RowFromLabel returns the row of a label, -1 if the label is malformed
func RowFromLabel(label string) int {
	row, _, err := ParseLabel(label)
	if err != nil {
		return -1
	}
	return row
}

// ColumnFromLabel returns the column of a label, -1 if the label is malformed
func ColumnFromLabel(label string) int {
	_, column, err := ParseLabel(label)
	if err != nil {
		return -1
	}
	return column
}
