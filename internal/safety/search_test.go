package safety_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JaimeStill/ssma/internal/safety"
)

type person struct {
	name       string
	department string
	daysOff    int
}

var personFields = safety.Fields[person]{
	"name":       func(p person) string { return p.name },
	"department": func(p person) string { return p.department },
}

func people() []person {
	return []person{
		{"João Silva", "Manutenção", 3},
		{"Maria Souza", "Produção", 0},
		{"Ana Lima", "Logística", 5},
	}
}

func TestFilter(t *testing.T) {
	fields := personFields.Select([]string{"name", "department"})

	t.Run("empty query returns everything in order", func(t *testing.T) {
		records := people()
		got := safety.Filter(records, "", fields)
		assert.Equal(t, records, got)
	})

	t.Run("case insensitive", func(t *testing.T) {
		got := safety.Filter(people(), "SILVA", fields)
		assert.Len(t, got, 1)
		assert.Equal(t, "João Silva", got[0].name)
	})

	t.Run("matches any field", func(t *testing.T) {
		got := safety.Filter(people(), "produ", fields)
		assert.Len(t, got, 1)
		assert.Equal(t, "Maria Souza", got[0].name)
	})

	t.Run("substring across records preserves order", func(t *testing.T) {
		got := safety.Filter(people(), "a", fields)
		assert.Equal(t, people(), got)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, safety.Filter(people(), "zzz", fields))
	})

	t.Run("unselected fields are not searched", func(t *testing.T) {
		nameOnly := personFields.Select([]string{"name", "unknown"})
		assert.Len(t, nameOnly, 1)
		assert.Empty(t, safety.Filter(people(), "produ", nameOnly))
	})
}

func TestMatches(t *testing.T) {
	fields := personFields.Select([]string{"name"})
	assert.True(t, safety.Matches(people()[0], "", fields))
	assert.True(t, safety.Matches(people()[0], "joão", fields))
	assert.False(t, safety.Matches(people()[0], "maria", fields))
}
