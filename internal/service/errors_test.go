package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmapi/internal/repository"
)

func TestMapRepoError(t *testing.T) {
	other := errors.New("connection reset")

	tests := []struct {
		name    string
		in      error
		want    error
		wantMsg string
	}{
		{name: "nil", in: nil, want: nil},
		{name: "not found", in: repository.ErrNotFound, want: ErrNotFound},
		{name: "referenced", in: &repository.ConstraintError{Err: repository.ErrReferenced, Constraint: "addresses_city_id_fkey"}, want: ErrProtected},
		{
			name:    "duplicate email",
			in:      &repository.ConstraintError{Err: repository.ErrDuplicate, Constraint: "customers_email_key"},
			want:    ErrConflict,
			wantMsg: "resource already exists: email is already registered",
		},
		{name: "duplicate unknown constraint", in: repository.ErrDuplicate, want: ErrConflict, wantMsg: ErrConflict.Error()},
		{
			name:    "invalid city",
			in:      &repository.ConstraintError{Err: repository.ErrInvalidReference, Constraint: "addresses_city_id_fkey"},
			want:    ErrInvalidReference,
			wantMsg: "referenced resource does not exist: city_id",
		},
		{name: "passthrough", in: other, want: other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapRepoError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
			if tt.wantMsg != "" {
				assert.EqualError(t, got, tt.wantMsg)
			}
		})
	}
}

func TestValidateStruct_FieldPaths(t *testing.T) {
	in := CustomerInput{
		Email: "not-an-email",
		Addresses: []AddressInput{
			{Street: "ok", CityID: 1},
			{CityID: 0},
		},
	}

	err := validateStruct(in)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, map[string]string{
		"name":                 "is required",
		"email":                "must be a valid email address",
		"addresses[1].street":  "is required",
		"addresses[1].city_id": "is required",
	}, ve.Fields)
	assert.Contains(t, ve.Error(), "email must be a valid email address")
}

func TestTrimmed(t *testing.T) {
	blank := "   "
	v := " 555 "
	assert.Nil(t, trimmed(nil))
	assert.Nil(t, trimmed(&blank))
	assert.Equal(t, "555", *trimmed(&v))
}
