// Package media picks the image attached to a new post.
package media

import (
	"fmt"

	"github.com/anonto42/public-space/backend/internal/utils"
)

// WelcomeURL is the fixed image of the seeded welcome post.
const WelcomeURL = "https://picsum.photos/seed/public/600/400"

type Generator interface {
	NewMediaURL() string
}

// PicsumGenerator returns a random placeholder photo per call.
type PicsumGenerator struct {
	Width, Height int
}

func NewPicsumGenerator() PicsumGenerator {
	return PicsumGenerator{Width: 600, Height: 400}
}

func (g PicsumGenerator) NewMediaURL() string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/%d/%d", utils.RandomToken(12), g.Width, g.Height)
}

// Fixed always returns the same URL.
type Fixed string

func (f Fixed) NewMediaURL() string { return string(f) }
