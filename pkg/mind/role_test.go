package mind

import "testing"

func TestRolesCanonicalOrder(t *testing.T) {
	want := []Role{
		RoleCortex, RoleSeer, RoleOracle, RoleHouse,
		RolePrudence, RoleDayDream, RoleConscience,
	}
	if len(Roles) != len(want) {
		t.Fatalf("expected %d roles, got %d", len(want), len(Roles))
	}
	for i, r := range want {
		if Roles[i] != r {
			t.Errorf("Roles[%d] = %q, want %q", i, Roles[i], r)
		}
	}
}

func TestRoleMetadata(t *testing.T) {
	for _, r := range Roles {
		if !r.Valid() {
			t.Errorf("role %q reported invalid", r)
		}
		if r.Description() == "" {
			t.Errorf("role %q has empty description", r)
		}
		temp := r.BaselineTemperature()
		if temp <= 0 || temp > 1 {
			t.Errorf("role %q baseline temperature %.2f out of (0, 1]", r, temp)
		}
	}

	if Role("muse").Valid() {
		t.Error("unknown role reported valid")
	}
	if Role("muse").Description() != "" {
		t.Error("unknown role has non-empty description")
	}
}

func TestBaselineValidates(t *testing.T) {
	if err := Baseline().Validate(); err != nil {
		t.Fatalf("baseline vector failed validation: %v", err)
	}
}
