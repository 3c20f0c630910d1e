package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageSlug(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"About Us", "about-us"},
		{"Terms & Conditions", "terms--conditions"},
		{"  Spaced   Out  ", "spaced-out"},
		{"FAQ", "faq"},
	}

	for _, tc := range cases {
		p := Page{Name: tc.name}
		require.NoError(t, p.BeforeSave(nil))
		assert.Equal(t, tc.want, p.Link)
	}
}

func TestPageSlugEmptyNameKeepsLink(t *testing.T) {
	p := Page{Link: "existing"}
	require.NoError(t, p.BeforeSave(nil))
	assert.Equal(t, "existing", p.Link)
}
