package recipients_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailblast/pkg/recipients"
)

func TestFromRows_LoadsRecordsInOrder(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"Name", "Email", "Company"},
		{"Ann", "ann@example.com", "Acme"},
		{"Bob", "bob@example.com", "Globex"},
	}

	got, err := recipients.FromRows(rows)
	require.NoError(t, err)
	require.Equal(t, []recipients.Record{
		{Name: "Ann", Email: "ann@example.com", Company: "Acme"},
		{Name: "Bob", Email: "bob@example.com", Company: "Globex"},
	}, got)
}

func TestFromRows_MissingRequiredColumns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header []string
	}{
		{"no email", []string{"Name", "Company"}},
		{"no name", []string{"Email", "Company"}},
		{"neither", []string{"Company", "Phone"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := recipients.FromRows([][]string{tt.header, {"a", "b"}})
			require.ErrorIs(t, err, recipients.ErrMissingColumns)
			require.Empty(t, got)
		})
	}
}

func TestFromRows_DropsRowsWithoutEmail(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"Name", "Email", "Company"},
		{"Ann", "ann@example.com", "Acme"},
		{"Ghost", "", "Initech"},
		{"Bob", "bob@example.com", "Globex"},
	}

	got, err := recipients.FromRows(rows)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "ann@example.com", got[0].Email)
	require.Equal(t, "bob@example.com", got[1].Email)
}

func TestFromRows_SynthesizesCompanyColumn(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"Name", "Email"},
		{"Ann", "ann@example.com"},
	}

	got, err := recipients.FromRows(rows)
	require.NoError(t, err)
	require.Equal(t, []recipients.Record{
		{Name: "Ann", Email: "ann@example.com", Company: ""},
	}, got)
}

func TestFromRows_EmptyNamePassesThrough(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"Name", "Email", "Company"},
		{"", "ann@example.com", ""},
	}

	got, err := recipients.FromRows(rows)
	require.NoError(t, err)
	require.Equal(t, recipients.Record{Email: "ann@example.com"}, got[0])
}

func TestFromRows_ShortRowsArePadded(t *testing.T) {
	t.Parallel()

	// Spreadsheet parsers omit trailing empty cells.
	rows := [][]string{
		{"Name", "Email", "Company"},
		{"Ann", "ann@example.com"},
	}

	got, err := recipients.FromRows(rows)
	require.NoError(t, err)
	require.Equal(t, recipients.Record{Name: "Ann", Email: "ann@example.com"}, got[0])
}

func TestFromRows_HeaderWhitespaceTrimmed(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{" Name ", "Email "},
		{"Ann", "ann@example.com"},
	}

	got, err := recipients.FromRows(rows)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestFromRows_EmptyInput(t *testing.T) {
	t.Parallel()

	got, err := recipients.FromRows(nil)
	require.ErrorIs(t, err, recipients.ErrEmptyFile)
	require.Empty(t, got)
}

func TestFromRows_HeaderOnly(t *testing.T) {
	t.Parallel()

	got, err := recipients.FromRows([][]string{{"Name", "Email"}})
	require.NoError(t, err)
	require.Empty(t, got)
}
