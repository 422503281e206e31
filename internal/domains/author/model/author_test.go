package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog-backend/internal/shared/apperror"
)

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

func TestCreateAuthorInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      CreateAuthorInput
		wantErr bool
	}{
		{"minimal", CreateAuthorInput{Name: "Ada Lovelace"}, false},
		{"with born date", CreateAuthorInput{Name: "Ada", BornDate: strp("1815-12-10")}, false},
		{"blank name", CreateAuthorInput{Name: ""}, true},
		{"long name", CreateAuthorInput{Name: strings.Repeat("a", MaxNameLength+1)}, true},
		{"bad date", CreateAuthorInput{Name: "Ada", BornDate: strp("10/12/1815")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateAuthorNormalizeTrimsName(t *testing.T) {
	in := CreateAuthorInput{Name: "   "}
	in.Normalize()
	assert.Error(t, in.Validate())
}

func TestCreateAuthorToAuthor(t *testing.T) {
	a, err := CreateAuthorInput{Name: "Ada", BornDate: strp("1815-12-10")}.ToAuthor()
	require.NoError(t, err)
	assert.Equal(t, time.Date(1815, 12, 10, 0, 0, 0, 0, time.UTC), *a.BornDate)
}

func TestUpdateAuthorInputValidate(t *testing.T) {
	assert.NoError(t, UpdateAuthorInput{}.Validate())
	assert.NoError(t, UpdateAuthorInput{Biography: strp("")}.Validate())
	assert.Error(t, UpdateAuthorInput{Name: strp("")}.Validate())
	assert.Error(t, UpdateAuthorInput{BornDate: strp("")}.Validate())
}

func TestUpdateAuthorToPatch(t *testing.T) {
	p, err := UpdateAuthorInput{}.ToPatch()
	require.NoError(t, err)
	assert.True(t, p.IsEmpty())

	p, err = UpdateAuthorInput{Name: strp("Grace")}.ToPatch()
	require.NoError(t, err)
	assert.False(t, p.IsEmpty())
}

func TestAuthorFilterValidate(t *testing.T) {
	assert.NoError(t, AuthorFilter{}.Validate())
	assert.NoError(t, AuthorFilter{Name: strp("ad"), BirthYear: intp(1815)}.Validate())
	assert.Error(t, AuthorFilter{BirthYear: intp(0)}.Validate())
}
