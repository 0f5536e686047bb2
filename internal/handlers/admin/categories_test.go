package admin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Sacs à dos":         "sacs-a-dos",
		"Bagagerie légère":   "bagagerie-legere",
		"  Maroquinerie  ":   "maroquinerie",
		"L'atelier du cuir":  "l-atelier-du-cuir",
		"Accessoires voyage": "accessoires-voyage",
	}

	for in, want := range cases {
		require.Equal(t, want, slugify(in), "slugify(%q)", in)
	}
}
