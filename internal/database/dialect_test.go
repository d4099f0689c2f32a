package database

import "testing"

func TestNumberPlaceholders(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{
			name:     "no placeholders",
			query:    "SELECT blob FROM app_state",
			expected: "SELECT blob FROM app_state",
		},
		{
			name:     "single placeholder",
			query:    "SELECT blob FROM app_state WHERE id = ?",
			expected: "SELECT blob FROM app_state WHERE id = $1",
		},
		{
			name:     "multiple placeholders",
			query:    "INSERT INTO app_state (id, blob) VALUES (?, ?)",
			expected: "INSERT INTO app_state (id, blob) VALUES ($1, $2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := numberPlaceholders(tt.query); got != tt.expected {
				t.Errorf("numberPlaceholders() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDialectRewriteQuery(t *testing.T) {
	query := "SELECT word FROM blocked_words WHERE word = ?"

	if got := NewSQLiteDialect().RewriteQuery(query); got != query {
		t.Errorf("sqlite rewrite changed query: %q", got)
	}
	if got := NewMySQLDialect().RewriteQuery(query); got != query {
		t.Errorf("mysql rewrite changed query: %q", got)
	}
	want := "SELECT word FROM blocked_words WHERE word = $1"
	if got := NewPostgresDialect().RewriteQuery(query); got != want {
		t.Errorf("postgres rewrite = %q, want %q", got, want)
	}
}

func TestSchemaStatementsCoverAllTables(t *testing.T) {
	dialects := map[string]Dialect{
		"sqlite":   NewSQLiteDialect(),
		"postgres": NewPostgresDialect(),
		"mysql":    NewMySQLDialect(),
	}
	for name, d := range dialects {
		t.Run(name, func(t *testing.T) {
			if got := len(d.SchemaStatements()); got != 2 {
				t.Errorf("got %d schema statements, want 2", got)
			}
		})
	}
}
