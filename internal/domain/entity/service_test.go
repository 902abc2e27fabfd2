package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		raw  string
		want Category
		ok   bool
	}{
		{"housing", CategoryHousing, true},
		{"HOUSING", CategoryHousing, true},
		{" Legal ", CategoryLegal, true},
		{"other", CategoryOther, true},
		{"transport", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseCategory(tc.raw)
		assert.Equal(t, tc.ok, ok, "raw=%q", tc.raw)
		if tc.ok {
			assert.Equal(t, tc.want, got, "raw=%q", tc.raw)
		}
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleJobSeeker, RoleEmployer, RoleOfficer, RoleAdmin} {
		assert.True(t, r.Valid())
	}
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("Admin").Valid())
}
