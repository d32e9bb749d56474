package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserRole(t *testing.T) {
	tests := []struct {
		input   string
		want    UserRole
		wantErr bool
	}{
		{"Farmer", UserRoleFarmer, false},
		{"investor", UserRoleInvestor, false},
		{" ADMIN ", UserRoleAdmin, false},
		{"guest", UserRoleGuest, false},
		{"owner", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseUserRole(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseProductTypeAndGrade(t *testing.T) {
	pt, err := ParseProductType("vegetables")
	require.NoError(t, err)
	assert.Equal(t, ProductTypeVegetables, pt)

	_, err = ParseProductType("minerals")
	assert.Error(t, err)

	g, err := ParseQualityGrade("grade1")
	require.NoError(t, err)
	assert.Equal(t, QualityGradeGrade1, g)

	_, err = ParseQualityGrade("A+")
	assert.Error(t, err)
}

func TestUserHasRole(t *testing.T) {
	u := &User{UID: "u", Role: UserRoleFarmer}
	assert.True(t, u.HasRole(UserRoleFarmer, UserRoleAdmin))
	assert.False(t, u.HasRole(UserRoleInvestor, UserRoleAdmin))
	assert.False(t, u.HasRole())
}
