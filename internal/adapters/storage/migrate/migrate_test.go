package migrate

import "testing"

func TestUpSection(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a (id TEXT);\n-- +migrate Down\nDROP TABLE a;\n"
	if got := UpSection(content); got != "\nCREATE TABLE a (id TEXT);\n" {
		t.Fatalf("unexpected up section %q", got)
	}

	plain := "CREATE TABLE b (id TEXT);"
	if got := UpSection(plain); got != plain {
		t.Fatalf("expected whole content without markers, got %q", got)
	}
}
