package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pysync/internal/core/domain"
)

func TestNewPackageName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want domain.PackageName
	}{
		{raw: "requests", want: "requests"},
		{raw: "Foo.Bar", want: "foo-bar"},
		{raw: "foo_bar", want: "foo-bar"},
		{raw: "FOO--bar", want: "foo-bar"},
		{raw: "a", want: "a"},
		{raw: "zope.interface", want: "zope-interface"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			got, err := domain.NewPackageName(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewPackageName_Invalid(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "-foo", "foo-", "foo bar", "foo!", ".hidden"} {
		_, err := domain.NewPackageName(raw)
		assert.ErrorContains(t, err, domain.ErrInvalidPackageName.Error(), raw)
	}
}

func TestPackageName_DistInfoPrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "typing_extensions", domain.MustPackageName("typing-extensions").DistInfoPrefix())
}
