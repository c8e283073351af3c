package db

import "testing"

func TestWithUTC(t *testing.T) {
	cases := map[string]string{
		"postgres://u:p@h:5432/db?sslmode=disable": "postgres://u:p@h:5432/db?sslmode=disable&timezone=UTC",
		"postgres://u:p@h:5432/db":                 "postgres://u:p@h:5432/db?timezone=UTC",
		"host=h user=u dbname=db":                  "host=h user=u dbname=db TimeZone=UTC",
		"host=h TimeZone=America/Sao_Paulo":        "host=h TimeZone=America/Sao_Paulo",
	}
	for in, want := range cases {
		if got := withUTC(in); got != want {
			t.Errorf("withUTC(%q) = %q, want %q", in, got, want)
		}
	}
}
