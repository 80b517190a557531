package rscheck

import "testing"

func TestSeverity_ExitCode(t *testing.T) {
	tests := []struct {
		severity Severity
		code     int
		name     string
	}{
		{SeverityOK, 0, "OK"},
		{SeverityWarning, 1, "WARNING"},
		{SeverityCritical, 2, "CRITICAL"},
		{SeverityUnknown, 3, "UNKNOWN"},
		{SeverityDependent, 4, "DEPENDENT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.severity.ExitCode() != tt.code {
				t.Errorf("expected exit code %d, got %d", tt.code, tt.severity.ExitCode())
			}
			if tt.severity.String() != tt.name {
				t.Errorf("expected name %s, got %s", tt.name, tt.severity.String())
			}
		})
	}
	t.Run("out of range severity is UNKNOWN", func(t *testing.T) {
		if Severity(42).String() != "UNKNOWN" {
			t.Errorf("expected UNKNOWN, got %s", Severity(42))
		}
	})
}

func TestMerge(t *testing.T) {
	ordered := []Severity{SeverityOK, SeverityWarning, SeverityCritical}
	t.Run("merge is idempotent", func(t *testing.T) {
		for _, s := range ordered {
			if got := Merge(s, s); got != s {
				t.Errorf("expected Merge(%s, %s) to be %s, got %s", s, s, s, got)
			}
		}
	})
	t.Run("merge is commutative and picks the more severe", func(t *testing.T) {
		for i, a := range ordered {
			for j, b := range ordered {
				want := a
				if j > i {
					want = b
				}
				if got := Merge(a, b); got != want {
					t.Errorf("expected Merge(%s, %s) to be %s, got %s", a, b, want, got)
				}
				if Merge(a, b) != Merge(b, a) {
					t.Errorf("expected Merge(%s, %s) to be commutative", a, b)
				}
			}
		}
	})
	t.Run("critical is never lowered", func(t *testing.T) {
		for _, s := range []Severity{SeverityOK, SeverityWarning, SeverityUnknown, SeverityDependent} {
			if got := Merge(SeverityCritical, s); got != SeverityCritical {
				t.Errorf("expected CRITICAL, got %s", got)
			}
		}
	})
	t.Run("unknown and dependent lose against ordered severities", func(t *testing.T) {
		for _, reserved := range []Severity{SeverityUnknown, SeverityDependent} {
			for _, s := range ordered {
				if got := Merge(reserved, s); got != s {
					t.Errorf("expected Merge(%s, %s) to be %s, got %s", reserved, s, s, got)
				}
			}
		}
	})
}
