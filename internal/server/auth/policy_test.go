package auth

import "testing"

func TestOwnershipPolicy_CanMutateUser(t *testing.T) {
	t.Parallel()

	p := NewOwnershipPolicy()

	tests := []struct {
		name    string
		subject string
		target  string
		want    bool
	}{
		{"owner", "u-1", "u-1", true},
		{"other user", "u-1", "u-2", false},
		{"empty subject", "", "u-1", false},
		{"both empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.CanMutateUser(tt.subject, tt.target); got != tt.want {
				t.Fatalf("CanMutateUser(%q, %q) = %v, want %v", tt.subject, tt.target, got, tt.want)
			}
		})
	}
}

func TestOwnershipPolicy_CanMutatePost(t *testing.T) {
	t.Parallel()

	p := NewOwnershipPolicy()

	if !p.CanMutatePost("u-1", "u-1") {
		t.Fatal("owner must be allowed to mutate own post")
	}
	if p.CanMutatePost("u-2", "u-1") {
		t.Fatal("non-owner must not be allowed to mutate a post")
	}
	if p.CanMutatePost("", "") {
		t.Fatal("unresolved identity must never be allowed")
	}
}
