package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilename(t *testing.T) {
	assert.Equal(t, "Ada_Lovelace_Resume.pdf", Filename("Ada Lovelace"))
	assert.Equal(t, "Ada_Augusta_King_Resume.pdf", Filename("Ada  Augusta\tKing"))
	assert.Equal(t, "Resume.pdf", Filename(""))
}
