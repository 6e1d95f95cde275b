package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCensorProfanity(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"clean text untouched", "great place, very helpful staff", "great place, very helpful staff"},
		{"single word", "this place is shit", "this place is ****"},
		{"case insensitive", "SHIT service", "**** service"},
		{"punctuation preserved", "what the fuck, really?", "what the ****, really?"},
		{"whole word only", "the class assembled on grass", "the class assembled on grass"},
		{"substring not censored", "scunthorpe pantry", "scunthorpe pantry"},
		{"multiple words", "damn good, no bullshit", "**** good, no ****"},
		{"word at end", "total crap", "total ****"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CensorProfanity(tc.in))
		})
	}
}
