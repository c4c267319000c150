package media

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPicsumGenerator(t *testing.T) {
	g := NewPicsumGenerator()
	a, b := g.NewMediaURL(), g.NewMediaURL()

	pattern := regexp.MustCompile(`^https://picsum\.photos/seed/[A-Za-z0-9]{12}/600/400$`)
	assert.Regexp(t, pattern, a)
	assert.Regexp(t, pattern, b)
	assert.NotEqual(t, a, b)
}

func TestFixed(t *testing.T) {
	assert.Equal(t, WelcomeURL, Fixed(WelcomeURL).NewMediaURL())
}
