package validation

import "testing"

func TestIsValidEmail_Accepts(t *testing.T) {
	valid := []string{
		"a@b.co",
		"a.b+c@sub.example.com",
		"user_name@example.com",
		"first.last@example.co",
		"u+tag@mail-server.example.org",
		"A1@d0main.io",
	}
	for _, s := range valid {
		if !IsValidEmail(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
}

func TestIsValidEmail_Rejects(t *testing.T) {
	invalid := []string{
		"",
		"not-an-email",
		"a@b",
		"a@b.c",
		"@example.com",
		"a@.com",
		"a b@example.com",
		"a@example.com ",
		"a@example..com",
		"a@example.c1",
	}
	for _, s := range invalid {
		if IsValidEmail(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
