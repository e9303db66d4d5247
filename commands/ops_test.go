package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateCommand(t *testing.T) {
	c, err := CreateCommand("upload /tmp/report.pdf alice")
	assert.Nil(t, err)
	assert.Equal(t, UPLOAD, int(c.Op))
	assert.Equal(t, []string{"/tmp/report.pdf", "alice"}, c.Args)

	c, err = CreateCommand("grant QmX alice bob")
	assert.Nil(t, err)
	assert.Equal(t, GRANT, int(c.Op))

	c, err = CreateCommand("request QmX bob ./downloads")
	assert.Nil(t, err)
	assert.Equal(t, REQUEST, int(c.Op))

	c, err = CreateCommand("mine")
	assert.Nil(t, err)
	assert.Equal(t, MINE, int(c.Op))

	c, err = CreateCommand("show 3")
	assert.Nil(t, err)
	assert.Equal(t, SHOW, int(c.Op))
	assert.Equal(t, []string{"3"}, c.Args)
}

func TestCreateCommandInvalid(t *testing.T) {
	// Wrong arity.
	_, err := CreateCommand("upload /tmp/report.pdf")
	assert.NotNil(t, err)
	_, err = CreateCommand("grant QmX alice")
	assert.NotNil(t, err)
	_, err = CreateCommand("status extra")
	assert.NotNil(t, err)
	// Depth must be a number.
	_, err = CreateCommand("show deep")
	assert.NotNil(t, err)
	// Unknown verbs parse to the default operation, which is invalid.
	_, err = CreateCommand("frobnicate")
	assert.NotNil(t, err)
}

func TestDefaultCommand(t *testing.T) {
	c := NewDefaultCommand()
	assert.True(t, c.IsDefault())
	assert.False(t, c.IsValid())
}
