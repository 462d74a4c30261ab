package services

import (
	"testing"

	"ma-helper/internal/core/domain"
	"ma-helper/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginClient(t *testing.T) {
	f := newFixture(t)

	result, err := f.auth.LoginClient(ctx, &LoginInput{ID: "test1@mesa.kr", Password: "123"})
	require.NoError(t, err)
	assert.Equal(t, "test1@mesa.kr", result.ID)
	assert.Len(t, result.MaintenanceData["NUTANIX"], 9)

	claims, err := f.auth.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, jwt.KindClient, claims.Kind)
	assert.Equal(t, "test1@mesa.kr", claims.Subject)
}

func TestLoginClient_Rejections(t *testing.T) {
	f := newFixture(t)

	for _, in := range []*LoginInput{
		{ID: "test1@mesa.kr", Password: "wrong"},
		{ID: "nobody@mesa.kr", Password: "123"},
		{},
	} {
		_, err := f.auth.LoginClient(ctx, in)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	}
}

func TestLoginEngineer(t *testing.T) {
	f := newFixture(t)

	result, err := f.auth.LoginEngineer(ctx, &LoginInput{ID: "eng7", Password: "123"})
	require.NoError(t, err)
	assert.Equal(t, "이상우", result.Name)
	assert.Equal(t, domain.RoleMember, result.Role)
	assert.Equal(t, []string{"test1@mesa.kr", "test4@mesa.kr"}, result.Assignments)

	claims, err := f.auth.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, jwt.KindEngineer, claims.Kind)
	assert.Equal(t, "eng7", claims.Subject)
	assert.Equal(t, "이상우", claims.Name)

	_, err = f.auth.LoginEngineer(ctx, &LoginInput{ID: "eng7", Password: "nope"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
