package models

import "testing"

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		required Role
		want     bool
	}{
		{"viewer refused admin", RoleViewer, RoleAdmin, false},
		{"owner passes viewer", RoleOwner, RoleViewer, true},
		{"member passes member", RoleMember, RoleMember, true},
		{"admin refused owner", RoleAdmin, RoleOwner, false},
		{"admin passes member", RoleAdmin, RoleMember, true},
		{"unknown refused viewer", Role("GUEST"), RoleViewer, false},
		{"empty refused viewer", Role(""), RoleViewer, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.role.AtLeast(tt.required); got != tt.want {
				t.Fatalf("%s.AtLeast(%s) = %v, want %v", tt.role, tt.required, got, tt.want)
			}
		})
	}
}

func TestRoleRankOrder(t *testing.T) {
	ordered := []Role{RoleViewer, RoleMember, RoleAdmin, RoleOwner}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Rank() >= ordered[i].Rank() {
			t.Fatalf("expected %s < %s", ordered[i-1], ordered[i])
		}
	}
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole(" admin ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != RoleAdmin {
		t.Fatalf("expected ADMIN, got %s", role)
	}

	if _, err := ParseRole("superuser"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestColorPaletteComplete(t *testing.T) {
	full := ColorPalette{Primary: "#111111", Secondary: "#222222", Accent: "#333333", Neutral: "#444444", Background: "#ffffff"}
	if !full.Complete() {
		t.Fatal("expected complete palette")
	}

	partial := full
	partial.Neutral = ""
	if partial.Complete() {
		t.Fatal("expected palette with empty slot to be incomplete")
	}

	colors := NewBrandColors(full)
	if colors.Accent.Usage != "Call-to-action" || colors.Accent.Hex != "#333333" {
		t.Fatalf("unexpected accent slot: %+v", colors.Accent)
	}
}
