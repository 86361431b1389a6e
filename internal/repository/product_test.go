package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeImageURLs(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"json array", `["a.jpg","b.jpg"]`, []string{"a.jpg", "b.jpg"}},
		{"empty array", `[]`, []string{}},
		{"json null", `null`, []string{}},
		{"empty string", ``, []string{}},
		{"legacy bare url", `http://img.example/a.jpg`, []string{"http://img.example/a.jpg"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, decodeImageURLs(tc.raw))
		})
	}
}
