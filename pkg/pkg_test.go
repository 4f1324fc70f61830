package pkg

import (
	"regexp"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "sexp" {
		t.Errorf("Name = %q, want %q", Name, "sexp")
	}
}

func TestDescription(t *testing.T) {
	if Description == "" {
		t.Error("Description must not be empty")
	}
}

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Fatal("Version must not be empty")
	}

	if strings.ContainsAny(Version, " \t\r\n") {
		t.Errorf("Version %q contains whitespace", Version)
	}

	if !regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`).MatchString(Version) {
		t.Errorf("Version %q is not a semantic version", Version)
	}
}

func TestAuthor(t *testing.T) {
	if len(Author) == 0 {
		t.Fatal("expected at least one author")
	}

	for _, a := range Author {
		if a.Name == "" || !strings.Contains(a.Email, "@") {
			t.Errorf("incomplete author %+v", a)
		}
	}
}
