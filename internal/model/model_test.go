package model_test

import (
	"testing"

	"github.com/d9705996/teamconnect/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestInitials(t *testing.T) {
	cases := map[string]string{
		"ana maria souza": "AS",
		"Bruno":           "B",
		"  joão   silva ": "JS",
		"jean-luc picard": "JP",
		"":                "",
		"   ":             "",
		"élodie durand":   "ÉD",
	}
	for in, want := range cases {
		assert.Equal(t, want, model.Initials(in), "input %q", in)
	}
}

func TestAll_StartsWithCompany(t *testing.T) {
	all := model.All()
	assert.IsType(t, &model.Company{}, all[0])
	assert.Len(t, all, 11)
}

func TestUser_BeforeCreateFillsSearchKeys(t *testing.T) {
	u := &model.User{Name: "Élia ARAÚJO", Email: "Elia@Acme.io"}
	assert.NoError(t, u.BeforeCreate(nil))
	assert.Equal(t, "élia araújo", u.NameKey)
	assert.Equal(t, "elia@acme.io", u.EmailKey)
}
